package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/metrics"

	"github.com/uptrace/bun"
)

const table = "students"

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	GetByName(ctx context.Context, name string) (*Student, error)
	GetAll(ctx context.Context) ([]Student, error)
}

type repository struct {
	db      bun.IDB
	metrics *metrics.Metrics
}

func NewRepository(db bun.IDB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(student).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", table, time.Since(start), err)

	if err != nil {
		return nil, db.TranslateError(table, err)
	}
	return student, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Student, error) {
	start := time.Now()
	student := new(Student)
	err := r.db.NewSelect().
		Model(student).
		Where("name = ?", name).
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", table, time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// GetAll returns students in insertion order.
func (r *repository) GetAll(ctx context.Context) ([]Student, error) {
	start := time.Now()
	var students []Student
	err := r.db.NewSelect().Model(&students).Order("id ASC").Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", table, time.Since(start), err)

	return students, err
}
