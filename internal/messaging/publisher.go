package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"student-attendance-manager/internal/config"
	"student-attendance-manager/internal/metrics"
)

// Publisher emits domain events on a best-effort basis. Delivery failures are
// logged and never returned to the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{})
	Close() error
}

type publisher struct {
	producer Producer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewPublisher(producer Producer, m *metrics.Metrics, logger *slog.Logger) Publisher {
	return &publisher{
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

func (p *publisher) Publish(ctx context.Context, eventType string, data interface{}) {
	event := NewEvent(eventType, data)

	start := time.Now()
	err := p.producer.Send(ctx, event)
	p.metrics.Messaging.RecordPublish(ctx, p.producer.System(), eventType, time.Since(start), err)

	if err != nil {
		p.logger.Warn("failed to publish event",
			"system", p.producer.System(),
			"type", eventType,
			"id", event.ID,
			"error", err,
		)
	}
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, interface{}) {}

func (noopPublisher) Close() error { return nil }

// NewFromConfig builds the Publisher for the configured backend. A broker that
// cannot be reached degrades to the no-op publisher.
func NewFromConfig(cfg config.MessagingConfig, m *metrics.Metrics, logger *slog.Logger) Publisher {
	producer, err := newProducer(cfg, logger)
	if err != nil {
		logger.Warn("event publishing disabled", "backend", cfg.Backend, "error", err)
		return NewNoopPublisher()
	}
	if producer == nil {
		return NewNoopPublisher()
	}
	return NewPublisher(producer, m, logger)
}

func newProducer(cfg config.MessagingConfig, logger *slog.Logger) (Producer, error) {
	switch cfg.Backend {
	case config.MessagingNone, "":
		return nil, nil
	case config.MessagingNATS:
		return NewNATSProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
	case config.MessagingKafka:
		return NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	default:
		return nil, fmt.Errorf("unsupported messaging backend %q", cfg.Backend)
	}
}
