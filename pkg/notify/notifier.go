// Package notify delivers booking confirmations. Delivery is best-effort:
// callers commit their state before notifying and must tolerate failures
// here without rolling back.
package notify

import (
	"context"
	"time"

	"roombook/pkg/model"
)

type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
}

// Event types published on the booking events topic.
const (
	EventBookingConfirmed = "booking.confirmed"
)

// Header keys attached to every published event.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// BookingConfirmedEvent is the payload published for a committed booking.
type BookingConfirmedEvent struct {
	BookingID string    `json:"booking_id"`
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func newBookingConfirmedEvent(b *model.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID: b.ID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
	}
}
