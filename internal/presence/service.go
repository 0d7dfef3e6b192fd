package presence

import (
	"context"
	"fmt"
	"log/slog"

	"student-attendance-manager/internal/messaging"
	"student-attendance-manager/internal/metrics"
	"student-attendance-manager/internal/student"
)

type Service interface {
	RecordPresence(ctx context.Context, name string, day int, startTime, endTime, room string) (*Presence, error)
	Report(ctx context.Context) ([]Summary, error)
	GenerateReport(ctx context.Context) ([]string, error)
}

type service struct {
	repo      Repository
	students  student.Service
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(repo Repository, students student.Service, publisher messaging.Publisher, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		students:  students,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// RecordPresence resolves the student before validating, so an unknown name is
// reported as *student.NotFoundError even when the other fields are invalid.
func (s *service) RecordPresence(ctx context.Context, name string, day int, startTime, endTime, room string) (*Presence, error) {
	owner, err := s.students.GetStudentByName(ctx, name)
	if err != nil {
		return nil, err
	}

	presence, err := New(Input{
		StudentID: owner.ID,
		Day:       day,
		StartTime: startTime,
		EndTime:   endTime,
		Room:      room,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, presence)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("presence recorded",
		"student", owner.Name,
		"day", created.Day,
		"duration_minutes", created.DurationMinutes(),
	)
	s.metrics.RecordPresenceRecorded(ctx)
	s.publisher.Publish(ctx, messaging.EventPresenceRecorded, created)

	return created, nil
}

// Report returns one ranked summary per stored student, including students
// with no counted presences.
func (s *service) Report(ctx context.Context) ([]Summary, error) {
	students, err := s.students.GetAllStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	summaries := make([]Summary, 0, len(students))
	for _, st := range students {
		presences, err := s.repo.GetByStudent(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list presences for %s: %w", st.Name, err)
		}
		summaries = append(summaries, Summarize(st.Name, presences))
	}

	Rank(summaries)
	return summaries, nil
}

func (s *service) GenerateReport(ctx context.Context) ([]string, error) {
	summaries, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(summaries))
	for i, summary := range summaries {
		lines[i] = summary.String()
	}

	s.metrics.RecordReportGenerated(ctx)
	s.publisher.Publish(ctx, messaging.EventReportGenerated, summaries)

	return lines, nil
}
