package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler processes one decoded event. A returned error leaves the message
// uncommitted so it is delivered again.
type Handler func(ctx context.Context, event map[string]any) error

type Consumer struct {
	Reader MessageReader
	// Backoff is the pause after a failed fetch or handler call.
	Backoff time.Duration
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		Reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MaxBytes: 10e6,
		}),
		Backoff: time.Second,
	}
}

// Run fetches until ctx is cancelled. Messages that are not JSON objects are
// logged and committed.
func (c *Consumer) Run(ctx context.Context, l *slog.Logger, handle Handler) {
	for {
		m, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			l.Error("kafka_fetch_error", "error", err)
			c.pause(ctx)
			continue
		}

		var event map[string]any
		if err := json.Unmarshal(m.Value, &event); err != nil {
			l.Warn("kafka_bad_message", "topic", m.Topic, "offset", m.Offset, "error", err)
		} else if err := handle(ctx, event); err != nil {
			l.Error("kafka_handle_error", "topic", m.Topic, "type", event["type"], "offset", m.Offset, "error", err)
			c.pause(ctx)
			continue
		}

		if err := c.Reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			l.Error("kafka_commit_error", "topic", m.Topic, "offset", m.Offset, "error", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}

func (c *Consumer) pause(ctx context.Context) {
	if c.Backoff <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.Backoff):
	}
}
