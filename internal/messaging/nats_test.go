package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"student-attendance-manager/internal/messaging"
	"student-attendance-manager/internal/metrics"
	"student-attendance-manager/testing/testnats"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSProducerWithContainer(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)
	defer natsContainer.Cleanup(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("PublishesEvent", func(t *testing.T) {
		subject := testnats.Subject(t)
		nc := natsContainer.Connect(t)

		received := make(chan *nats.Msg, 1)
		_, err := nc.Subscribe(subject, func(msg *nats.Msg) {
			received <- msg
		})
		require.NoError(t, err)
		require.NoError(t, nc.Flush())

		producer, err := messaging.NewNATSProducer(natsContainer.URL, subject, logger)
		require.NoError(t, err)

		publisher := messaging.NewPublisher(producer, metrics.NewMock(), logger)
		publisher.Publish(context.Background(), messaging.EventStudentCreated, map[string]string{"name": "Alice"})
		require.NoError(t, publisher.Close())

		select {
		case msg := <-received:
			var event struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(msg.Data, &event))
			assert.Equal(t, messaging.EventStudentCreated, event.Type)
			assert.Equal(t, "Alice", event.Data["name"])
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for event")
		}
	})
}
