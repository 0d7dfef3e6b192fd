package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"student-attendance-manager/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Telemetry struct {
	MeterProvider *metric.MeterProvider
	Metrics       *metrics.Metrics
}

func InitMeterProvider(ctx context.Context, endpoint, serviceName, serviceVersion string, logger *slog.Logger) (*metric.MeterProvider, error) {
	logger.Info("initializing OTel metrics", "endpoint", endpoint)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter,
			metric.WithInterval(10*time.Second))),
	)

	otel.SetMeterProvider(meterProvider)
	logger.Info("OTel metrics initialized successfully")

	return meterProvider, nil
}

// Init sets up instruments on the global meter. With enabled=false the
// global provider stays the no-op default and MeterProvider is nil.
func Init(ctx context.Context, enabled bool, endpoint, serviceName, serviceVersion string, logger *slog.Logger) (*Telemetry, error) {
	var meterProvider *metric.MeterProvider
	if enabled {
		var err error
		meterProvider, err = InitMeterProvider(ctx, endpoint, serviceName, serviceVersion, logger)
		if err != nil {
			return nil, err
		}
	}

	return newTelemetry(ctx, meterProvider, otel.Meter(serviceName))
}

// newTelemetry builds the instruments on meter. Runtime gauges are only
// registered when a provider exports them. On failure the provider is shut down.
func newTelemetry(ctx context.Context, meterProvider *metric.MeterProvider, meter otelmetric.Meter) (*Telemetry, error) {
	fail := func(err error) (*Telemetry, error) {
		if meterProvider != nil {
			if shutdownErr := meterProvider.Shutdown(ctx); shutdownErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to shutdown meter provider: %w", shutdownErr))
			}
		}
		return nil, err
	}

	m, err := metrics.New(meter)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize metrics: %w", err))
	}

	if meterProvider != nil {
		if _, err := metrics.NewRuntimeMetrics(meter); err != nil {
			return fail(fmt.Errorf("failed to initialize runtime metrics: %w", err))
		}
	}

	return &Telemetry{
		MeterProvider: meterProvider,
		Metrics:       m,
	}, nil
}

func (t *Telemetry) Shutdown(ctx context.Context, logger *slog.Logger) error {
	if t == nil || t.MeterProvider == nil {
		return nil
	}
	logger.Info("shutting down OTel meter provider")
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
