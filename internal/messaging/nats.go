package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const natsFlushTimeout = 5 * time.Second

type NATSProducer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewNATSProducer(url string, subject string, logger *slog.Logger) (*NATSProducer, error) {
	nc, err := nats.Connect(url, nats.Name("attendance"))
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &NATSProducer{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

func (p *NATSProducer) Send(ctx context.Context, event Event) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, valueBytes); err != nil {
		return err
	}

	p.logger.Debug("event sent to NATS", "subject", p.subject, "type", event.Type, "id", event.ID)
	return nil
}

func (p *NATSProducer) System() string {
	return SystemNATS
}

// Close flushes buffered events before closing the connection.
func (p *NATSProducer) Close() error {
	err := p.conn.FlushTimeout(natsFlushTimeout)
	p.conn.Close()
	return err
}
