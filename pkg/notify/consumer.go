package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"roombook/pkg/logger"
)

// EventHandler processes one decoded booking event. Delivery is at-most-once:
// a handler error is logged and the event is skipped, matching the
// best-effort contract of the confirmation channel.
type EventHandler func(ctx context.Context, eventType string, event BookingConfirmedEvent) error

// Consumer reads booking events off Kafka as part of a consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    *logger.Logger
}

func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" || groupID == "" {
		return nil, fmt.Errorf("topic and group id are required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	})

	return &Consumer{reader: reader, log: log}, nil
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		var event BookingConfirmedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Error("Dropping undecodable booking event",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return fmt.Errorf("failed to commit message: %w", err)
			}
			continue
		}

		if err := handler(ctx, headerValue(msg, HeaderEventType), event); err != nil {
			c.log.Error("Booking event handler failed",
				"booking_id", event.BookingID,
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
