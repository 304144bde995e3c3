package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roombook/pkg/config"
	"roombook/pkg/notify"
)

const ServiceName = "notifier"

// The notifier worker is the delivery half of best-effort confirmations: it
// drains the booking events topic and hands each confirmation to the
// outbound channel (currently the log).
func main() {
	cfg := config.Load(ServiceName)

	consumer, err := notify.NewConsumer(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.NotifierGroupID, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize consumer", "error", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Starting notifier worker",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.NotifierGroupID,
	)

	if err := consumer.Run(ctx, deliverConfirmation(cfg)); err != nil {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier worker stopped")
}

func deliverConfirmation(cfg *config.Config) notify.EventHandler {
	return func(_ context.Context, eventType string, event notify.BookingConfirmedEvent) error {
		cfg.Log.Info("Booking confirmation delivered",
			"event_type", eventType,
			"booking_id", event.BookingID,
			"room_id", event.RoomID,
			"start_time", event.StartTime.Format(time.RFC3339),
			"end_time", event.EndTime.Format(time.RFC3339),
		)
		return nil
	}
}
