// Package testnats runs a NATS server in a container for event publishing
// tests.
package testnats

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "nats:2.10-alpine"
	clientPort = "4222/tcp"
)

var (
	server     *NATSContainer
	serverOnce sync.Once
)

type NATSContainer struct {
	Container testcontainers.Container
	URL       string
}

// SetupSharedNATS starts one server per test binary. Skipped with -short or
// when no container provider is reachable. Callers must not run in parallel
// on the same subject; use Subject for a per-test one.
func SetupSharedNATS(t *testing.T) *NATSContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping nats container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	serverOnce.Do(func() {
		server = start(t)
	})

	require.NotNil(t, server, "shared nats container failed to start")
	return server
}

func start(t *testing.T) *NATSContainer {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{clientPort},
			WaitingFor:   wait.ForListeningPort(clientPort),
		},
		Started: true,
	})
	require.NoError(t, err)

	endpoint, err := container.PortEndpoint(ctx, clientPort, "nats")
	require.NoError(t, err)

	return &NATSContainer{Container: container, URL: endpoint}
}

// Subject derives an event subject unique to the running test.
func Subject(t *testing.T) string {
	return "test.events." + strings.NewReplacer("/", ".", " ", "_").Replace(t.Name())
}

func (nc *NATSContainer) Cleanup(t *testing.T) {
	t.Helper()

	if nc.Container == nil {
		return
	}
	if err := nc.Container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate nats container: %s", err)
	}
}

// Connect opens a subscriber connection closed when the test ends.
func (nc *NATSContainer) Connect(t *testing.T) *nats.Conn {
	t.Helper()

	conn, err := nats.Connect(nc.URL)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	return conn
}
