package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"tagboard/internal/config"
	"tagboard/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher announces tag changes on JetStream
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher connects and makes sure the stream exists
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg, cfg.ConsumerName+"-publisher", logger)
	if err != nil {
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{logger: logger, conn: conn, js: js, config: cfg}, nil
}

// PublishTagCreated publishes the event, deduplicated on the tag id
func (p *Publisher) PublishTagCreated(ctx context.Context, event domain.TagCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.config.Subject, data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", p.config.Subject, err)
	}

	p.logger.Debug("event published",
		slog.String("subject", p.config.Subject),
		slog.String("tagID", event.ID),
		slog.Uint64("seq", ack.Sequence),
		slog.Bool("duplicate", ack.Duplicate))
	return nil
}

// Close drains the connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
