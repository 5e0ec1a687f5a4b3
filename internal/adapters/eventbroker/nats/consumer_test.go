package nats_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	nats2 "tagboard/internal/adapters/eventbroker/nats"
	"tagboard/internal/config"
	"tagboard/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type mockHandler struct {
	messages [][]byte
	received chan struct{}
	err      error
	mu       sync.Mutex
}

func (m *mockHandler) HandleMessage(ctx context.Context, data []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, data)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- struct{}{}
	}
	return m.err
}

func (m *mockHandler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func setupNATSContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			ExposedPorts: []string{"4222/tcp"},
			Cmd:          []string{"-js"},
			WaitingFor:   wait.ForLog("Server is ready"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func testConfig(natsURL, name string) config.NATSConfig {
	return config.NATSConfig{
		URL:          natsURL,
		StreamName:   name + "-stream",
		Subject:      name + ".created",
		ConsumerName: name + "-browser",
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPublisherToConsumer(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "roundtrip")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	handler := &mockHandler{received: make(chan struct{}, 1)}
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(ctx, handler))

	// Act
	err = publisher.PublishTagCreated(ctx, domain.TagCreatedEvent{ID: "42", Title: "React", Slug: "react"})
	require.NoError(t, err)

	// Assert
	select {
	case <-handler.received:
	case <-time.After(3 * time.Second):
		t.Fatal("message not received")
	}
	require.Equal(t, 1, handler.count())
	assert.JSONEq(t, `{"id":"42","title":"React","slug":"react","createdAt":"0001-01-01T00:00:00Z"}`, string(handler.messages[0]))
}

func TestConsumer_EveryConsumerSeesEveryEvent(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "fanout")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	handlers := []*mockHandler{
		{received: make(chan struct{}, 1)},
		{received: make(chan struct{}, 1)},
	}
	for _, h := range handlers {
		consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
		require.NoError(t, err)
		defer consumer.Close()
		require.NoError(t, consumer.Subscribe(ctx, h))
	}

	// Act
	require.NoError(t, publisher.PublishTagCreated(ctx, domain.TagCreatedEvent{ID: "1", Title: "go", Slug: "go"}))

	// Assert
	for i, h := range handlers {
		select {
		case <-h.received:
		case <-time.After(3 * time.Second):
			t.Fatalf("consumer %d did not receive the event", i)
		}
	}
}

func TestPublisher_DeduplicatesOnTagID(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "dedup")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, discardLogger)
	require.NoError(t, err)
	defer publisher.Close()

	handler := &mockHandler{received: make(chan struct{}, 4)}
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(ctx, handler))

	event := domain.TagCreatedEvent{ID: "same", Title: "go", Slug: "go"}

	// Act
	require.NoError(t, publisher.PublishTagCreated(ctx, event))
	require.NoError(t, publisher.PublishTagCreated(ctx, event))

	// Assert
	select {
	case <-handler.received:
	case <-time.After(3 * time.Second):
		t.Fatal("message not received")
	}
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, handler.count())
}

func TestConsumer_RetryLogic(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "retry")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	handler := &mockHandler{
		received: make(chan struct{}, 5),
		err:      fmt.Errorf("temporary failure"),
	}
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(ctx, handler))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	// Act
	require.NoError(t, nc.Publish(cfg.Subject, []byte(`{"id":"1"}`)))

	// Assert
	for i := 0; i < 3; i++ {
		select {
		case <-handler.received:
		case <-time.After(3 * time.Second):
			t.Fatalf("delivery %d not received", i)
		}
	}
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 3, handler.count())
}

func TestConsumer_UnknownEventIsNotRedelivered(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "poison")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	handler := &mockHandler{
		received: make(chan struct{}, 3),
		err:      fmt.Errorf("%w: garbage", domain.ErrUnknownEvent),
	}
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(ctx, handler))

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	// Act
	require.NoError(t, nc.Publish(cfg.Subject, []byte("garbage")))

	// Assert
	select {
	case <-handler.received:
	case <-time.After(3 * time.Second):
		t.Fatal("message not received")
	}
	time.Sleep(time.Second)
	assert.Equal(t, 1, handler.count())
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := testConfig(natsURL, "shutdown")

	handler := &mockHandler{received: make(chan struct{}, 1)}
	consumer, err := nats2.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)

	// Act
	require.NoError(t, consumer.Subscribe(context.Background(), handler))
	require.NoError(t, consumer.Close())

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()
	_ = nc.Publish(cfg.Subject, []byte(`{"id":"late"}`))

	// Assert
	select {
	case <-handler.received:
		t.Fatal("message should not have been processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
