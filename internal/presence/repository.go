package presence

import (
	"context"
	"time"

	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/metrics"

	"github.com/uptrace/bun"
)

const table = "presences"

type Repository interface {
	Create(ctx context.Context, presence *Presence) (*Presence, error)
	GetByStudent(ctx context.Context, studentID int) ([]Presence, error)
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

func (r *repository) Create(ctx context.Context, presence *Presence) (*Presence, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(presence).Returning("*").Exec(ctx)

	r.metrics.Database.RecordQuery(ctx, "insert", table, time.Since(start), err)

	if err != nil {
		return nil, db.TranslateError(table, err)
	}
	return presence, nil
}

func (r *repository) GetByStudent(ctx context.Context, studentID int) ([]Presence, error) {
	start := time.Now()
	var presences []Presence
	err := r.db.NewSelect().
		Model(&presences).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Scan(ctx)

	r.metrics.Database.RecordQuery(ctx, "select", table, time.Since(start), err)

	return presences, err
}
