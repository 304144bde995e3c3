package service

import (
	"context"
	"errors"
	"time"

	roomserrors "roombook/internal/rooms/errors"
	"roombook/internal/rooms/repository"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/notify"
)

// BookingSystem orchestrates room bookings: it validates requests, resolves
// availability against the repository, and sends best-effort confirmations.
type BookingSystem interface {
	// BookRoom reserves [start, end) on the given room. It returns false
	// with a nil error when the window is already taken; that is a normal
	// negative outcome, not a failure.
	BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error)

	// CancelBooking removes a booking that has not yet started.
	CancelBooking(ctx context.Context, bookingID string) error

	// GetAvailableRooms lists the rooms free for [start, end), in
	// repository order.
	GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error)
}

type bookingSystem struct {
	repo     repository.RoomRepository
	lockRepo repository.RoomLockRepository
	notifier notify.Notifier
	clock    clock.Clock
	cfg      *config.Config
}

func NewBookingSystem(
	repo repository.RoomRepository,
	lockRepo repository.RoomLockRepository,
	notifier notify.Notifier,
	clk clock.Clock,
	cfg *config.Config,
) BookingSystem {
	return &bookingSystem{
		repo:     repo,
		lockRepo: lockRepo,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
	}
}

func (s *bookingSystem) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	if roomID == "" || start.IsZero() || end.IsZero() {
		return false, apperrors.InvalidInput("Booking requires valid start and end times plus a room id")
	}
	if !start.Before(end) {
		return false, apperrors.InvalidInput("End time must be after start time")
	}

	// The load-check-mutate-save cycle below must be atomic per room, or two
	// concurrent requests could both see the window as free.
	lockID, err := s.acquireRoomLock(ctx, roomID)
	if err != nil {
		return false, err
	}
	defer s.releaseRoomLock(ctx, lockID)

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return false, apperrors.InvalidInput("Room does not exist")
		}
		return false, apperrors.Internal("Failed to load room", err)
	}

	if !room.IsAvailable(start, end) {
		s.cfg.Log.Info("Room not available for requested window",
			"room_id", roomID,
			"start_time", start,
			"end_time", end,
		)
		return false, nil
	}

	booking := model.NewBooking(roomID, start, end)
	room.AddBooking(booking)

	if err := s.repo.Save(ctx, room); err != nil {
		return false, apperrors.Internal("Failed to save booking", err)
	}

	// The booking is committed; a failed confirmation must not undo it.
	if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to send booking confirmation",
			"booking_id", booking.ID,
			"room_id", roomID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Room booked successfully",
		"booking_id", booking.ID,
		"room_id", roomID,
		"start_time", start,
		"end_time", end,
	)
	return true, nil
}

func (s *bookingSystem) CancelBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return apperrors.InvalidInput("Booking id cannot be empty")
	}

	// Booking ids are globally unique, so the first owning room wins.
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return apperrors.Internal("Failed to load rooms", err)
	}

	var owner *model.Room
	for _, room := range rooms {
		if room.HasBooking(bookingID) {
			owner = room
			break
		}
	}
	if owner == nil {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}

	lockID, err := s.acquireRoomLock(ctx, owner.ID)
	if err != nil {
		return err
	}
	defer s.releaseRoomLock(ctx, lockID)

	// Reload under the lock; the scan above ran without it.
	room, err := s.repo.FindByID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", bookingID)
		}
		return apperrors.Internal("Failed to load room", err)
	}

	booking := room.GetBooking(bookingID)
	if booking == nil {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}

	if !booking.StartTime.After(s.clock.Now()) {
		return apperrors.IllegalState("Cannot cancel a booking that has already started or ended")
	}

	room.RemoveBooking(bookingID)
	if err := s.repo.Save(ctx, room); err != nil {
		return apperrors.Internal("Failed to save room", err)
	}

	s.cfg.Log.Info("Booking cancelled",
		"booking_id", bookingID,
		"room_id", room.ID,
	)
	return nil
}

func (s *bookingSystem) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperrors.InvalidInput("Both start and end time must be provided")
	}
	if !start.Before(end) {
		return nil, apperrors.InvalidInput("End time must be after start time")
	}

	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load rooms", err)
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsAvailable(start, end) {
			available = append(available, room)
		}
	}

	return available, nil
}

func (s *bookingSystem) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID, err := s.lockRepo.Acquire(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrLockHeld) {
			return "", apperrors.Conflict("Room is currently being modified by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire room lock", err)
	}
	return lockID, nil
}

func (s *bookingSystem) releaseRoomLock(ctx context.Context, lockID string) {
	if err := s.lockRepo.Release(ctx, lockID); err != nil {
		s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", err)
	}
}
