package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"tagboard/internal/config"
	"tagboard/internal/core/domain"
	"tagboard/internal/core/port"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Consumer delivers tag events to a port.MessageService.
// Every Consumer gets its own ephemeral JetStream consumer, so each browser sees every event.
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	iter   jetstream.MessagesContext
	wg     sync.WaitGroup

	stopOnCancel func() bool
}

// NewNATSConsumer creates a new consumer
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {
	conn, js, err := connect(cfg, cfg.ConsumerName, logger)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// Subscribe starts delivering events published from now on
func (n *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	if err := ensureStream(ctx, n.js, n.config); err != nil {
		return err
	}

	consumerCfg := jetstream.ConsumerConfig{
		Description:       n.config.ConsumerName,
		AckPolicy:         jetstream.AckExplicitPolicy,
		DeliverPolicy:     jetstream.DeliverNewPolicy,
		FilterSubject:     n.config.Subject,
		AckWait:           10 * time.Second,
		MaxDeliver:        3,
		InactiveThreshold: time.Minute,
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerCfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		return fmt.Errorf("failed to start message iterator: %w", err)
	}
	n.iter = iter

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.logger.Info("NATS subscription started", "subject", n.config.Subject)
		for {
			msg, err := iter.Next()
			if err != nil {
				if errors.Is(err, jetstream.ErrMsgIteratorClosed) || ctx.Err() != nil {
					n.logger.Info("NATS subscription stopped")
					return
				}
				n.logger.Error("failed to receive message", "error", err)
				return
			}

			if handleErr := handler.HandleMessage(ctx, msg.Data()); handleErr != nil {
				n.logger.Warn("failed to handle message", "subject", msg.Subject(), "error", handleErr)
				if errors.Is(handleErr, domain.ErrUnknownEvent) {
					if errTerm := msg.Term(); errTerm != nil {
						n.logger.Error("failed to terminate message", "error", errTerm)
					}
					continue
				}
				if errNak := msg.Nak(); errNak != nil {
					n.logger.Error("failed to nak message", "error", errNak)
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				n.logger.Error("failed to ack message", "error", ackErr)
			}
		}
	}()

	n.stopOnCancel = context.AfterFunc(ctx, iter.Stop)
	return nil
}

// Close graceful shutdown
func (n *Consumer) Close() error {
	if n.stopOnCancel != nil {
		n.stopOnCancel()
	}
	if n.iter != nil {
		n.iter.Stop()
	}

	n.wg.Wait()

	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}
