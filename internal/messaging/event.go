package messaging

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventStudentCreated   = "student.created"
	EventPresenceRecorded = "presence.recorded"
	EventReportGenerated  = "report.generated"
)

// Event is the envelope every domain event is published in.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
