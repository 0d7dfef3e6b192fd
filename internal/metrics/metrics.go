package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	Database  *DatabaseMetrics
	Messaging *MessagingMetrics

	studentsCreated   metric.Int64Counter
	presencesRecorded metric.Int64Counter
	commandsSkipped   metric.Int64Counter
	reportsGenerated  metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.studentsCreated, err = meter.Int64Counter(
		"attendance.students.created",
		metric.WithDescription("Total number of students created"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.presencesRecorded, err = meter.Int64Counter(
		"attendance.presences.recorded",
		metric.WithDescription("Total number of presence records stored"),
		metric.WithUnit("{presence}"),
	)
	if err != nil {
		return nil, err
	}

	m.commandsSkipped, err = meter.Int64Counter(
		"attendance.commands.skipped",
		metric.WithDescription("Total number of input lines skipped because of an error"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, err
	}

	m.reportsGenerated, err = meter.Int64Counter(
		"attendance.reports.generated",
		metric.WithDescription("Total number of attendance reports generated"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	m.Database, err = NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	m.Messaging, err = NewMessagingMetrics(meter)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordPresenceRecorded(ctx context.Context) {
	if m != nil && m.presencesRecorded != nil {
		m.presencesRecorded.Add(ctx, 1)
	}
}

func (m *Metrics) RecordCommandSkipped(ctx context.Context, command, reason string) {
	if m != nil && m.commandsSkipped != nil {
		m.commandsSkipped.Add(ctx, 1, metric.WithAttributes(
			attribute.String("command", command),
			attribute.String("reason", reason),
		))
	}
}

func (m *Metrics) RecordReportGenerated(ctx context.Context) {
	if m != nil && m.reportsGenerated != nil {
		m.reportsGenerated.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{
		Database:  &DatabaseMetrics{},
		Messaging: &MessagingMetrics{},
	}
}
