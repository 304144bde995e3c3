package model

import "time"

// Room is a bookable resource owning a set of non-overlapping bookings. The
// aggregate is loaded and saved as a whole; bookings are never shared between
// rooms.
type Room struct {
	ID       string     `json:"id" bson:"_id" validate:"required"`
	Name     string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Bookings []*Booking `json:"bookings" bson:"bookings"`
}

// IsAvailable reports whether [start, end) is free of overlap with the
// room's bookings. Intervals are half-open: a booking ending exactly at
// start, or starting exactly at end, does not conflict.
func (r *Room) IsAvailable(start, end time.Time) bool {
	for _, b := range r.Bookings {
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return false
		}
	}
	return true
}

// AddBooking appends a booking to the room. Callers must have verified
// availability first; the room does not re-check the window.
func (r *Room) AddBooking(b *Booking) {
	r.Bookings = append(r.Bookings, b)
}

// RemoveBooking deletes the booking with the given id, preserving the order
// of the remaining bookings. It reports whether a booking was removed.
func (r *Room) RemoveBooking(id string) bool {
	for i, b := range r.Bookings {
		if b.ID == id {
			r.Bookings = append(r.Bookings[:i], r.Bookings[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) HasBooking(id string) bool {
	return r.GetBooking(id) != nil
}

func (r *Room) GetBooking(id string) *Booking {
	for _, b := range r.Bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}
