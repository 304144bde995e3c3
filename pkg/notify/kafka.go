package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"roombook/pkg/logger"
	"roombook/pkg/model"
)

// KafkaNotifier publishes booking confirmations to a Kafka topic. Messages
// are keyed by room id so events for one room stay ordered on a partition.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    *logger.Logger
	closed bool
	mu     sync.Mutex
}

func NewKafkaNotifier(brokers []string, topic string, log *logger.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	}

	return &KafkaNotifier{
		writer: writer,
		log:    log,
	}, nil
}

func (n *KafkaNotifier) SendBookingConfirmation(ctx context.Context, booking *model.Booking) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return fmt.Errorf("notifier is closed")
	}
	n.mu.Unlock()

	payload, err := json.Marshal(newBookingConfirmedEvent(booking))
	if err != nil {
		return fmt.Errorf("failed to encode booking confirmation: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(booking.RoomID),
		Value: payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.New().String())},
			{Key: HeaderEventType, Value: []byte(EventBookingConfirmed)},
			{Key: HeaderSource, Value: []byte("rooms")},
			{Key: HeaderTimestamp, Value: []byte(time.Now().Format(time.RFC3339))},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	n.log.Debug("Booking confirmation published",
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
	)
	return nil
}

func (n *KafkaNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	return n.writer.Close()
}
