package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reserved half-open time interval [StartTime, EndTime) on one
// room. It is immutable after creation; cancellation removes it from the
// owning room rather than mutating it.
type Booking struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required"`
	StartTime time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// NewBooking mints a booking with a fresh unique id. The caller is
// responsible for having validated the time window.
func NewBooking(roomID string, start, end time.Time) *Booking {
	return &Booking{
		ID:        uuid.New().String(),
		RoomID:    roomID,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}
