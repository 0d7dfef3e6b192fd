package messaging

import "context"

const (
	SystemNATS  = "nats"
	SystemKafka = "kafka"
)

// Producer delivers a single event to a broker.
type Producer interface {
	Send(ctx context.Context, event Event) error
	System() string
	Close() error
}
