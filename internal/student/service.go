package student

import (
	"context"
	"errors"
	"log/slog"

	"student-attendance-manager/internal/messaging"
	"student-attendance-manager/internal/metrics"
)

type Service interface {
	AddStudent(ctx context.Context, name string) (*Student, error)
	GetStudentByName(ctx context.Context, name string) (*Student, error)
	GetAllStudents(ctx context.Context) ([]Student, error)
}

type service struct {
	repo      Repository
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(repo Repository, publisher messaging.Publisher, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// AddStudent persists a new student. A duplicate name surfaces as the store's
// *db.ConstraintError.
func (s *service) AddStudent(ctx context.Context, name string) (*Student, error) {
	student, err := New(Input{Name: name})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("student added", "id", created.ID, "name", created.Name)
	s.metrics.RecordStudentCreated(ctx)
	s.publisher.Publish(ctx, messaging.EventStudentCreated, created)

	return created, nil
}

// GetStudentByName returns *NotFoundError when no student has that name.
func (s *service) GetStudentByName(ctx context.Context, name string) (*Student, error) {
	student, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}
	return student, nil
}

func (s *service) GetAllStudents(ctx context.Context) ([]Student, error) {
	return s.repo.GetAll(ctx)
}
