package metrics

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DatabaseMetrics times every repository call against the attendance store.
type DatabaseMetrics struct {
	poolOpen   metric.Int64ObservableGauge
	poolInUse  metric.Int64ObservableGauge
	queryTime  metric.Float64Histogram
	queryFails metric.Int64Counter
	store      *sql.DB
}

func NewDatabaseMetrics(meter metric.Meter) (*DatabaseMetrics, error) {
	dm := &DatabaseMetrics{}

	var err error

	dm.poolOpen, err = meter.Int64ObservableGauge(
		"db.connections.open",
		metric.WithDescription("Connections the attendance store holds open"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}

	dm.poolInUse, err = meter.Int64ObservableGauge(
		"db.connections.in_use",
		metric.WithDescription("Connections busy with a student or presence query"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}

	// A local sqlite file answers in well under a millisecond, so the buckets
	// start lower than a networked postgres would need.
	dm.queryTime, err = meter.Float64Histogram(
		"db.query.duration",
		metric.WithDescription("Time spent on one repository query, by operation and table"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0,
		),
	)
	if err != nil {
		return nil, err
	}

	dm.queryFails, err = meter.Int64Counter(
		"db.query.errors",
		metric.WithDescription("Repository queries that returned an error, including constraint violations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return dm, nil
}

// RegisterDB observes the pool of store on every collection.
func (dm *DatabaseMetrics) RegisterDB(store *sql.DB, meter metric.Meter) error {
	dm.store = store

	_, err := meter.RegisterCallback(
		func(ctx context.Context, observer metric.Observer) error {
			if dm.store == nil {
				return nil
			}
			stats := dm.store.Stats()
			observer.ObserveInt64(dm.poolOpen, int64(stats.OpenConnections))
			observer.ObserveInt64(dm.poolInUse, int64(stats.InUse))
			return nil
		},
		dm.poolOpen,
		dm.poolInUse,
	)
	return err
}

func (dm *DatabaseMetrics) RecordQuery(ctx context.Context, operation string, table string, duration time.Duration, err error) {
	if dm == nil || dm.queryTime == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("table", table),
	)

	dm.queryTime.Record(ctx, duration.Seconds(), attrs)
	if err != nil && dm.queryFails != nil {
		dm.queryFails.Add(ctx, 1, attrs)
	}
}
