package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	roomserrors "roombook/internal/rooms/errors"
	"roombook/internal/rooms/repository"
	"roombook/internal/rooms/validator"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/model"
	"roombook/pkg/sanitizer"
)

// RoomService is the administrative surface for the room inventory. Booking
// mutations go through BookingSystem, never through here.
type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(repo repository.RoomRepository, v *validator.RoomValidator, cfg *config.Config) RoomService {
	return &roomService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	room.Name = sanitizer.NormalizeRoomName(room.Name)
	if room.ID == "" {
		room.ID = uuid.New().String()
	} else {
		room.ID = sanitizer.NormalizeRoomID(room.ID)
	}

	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "room_id", room.ID, "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully", "room_id", room.ID, "name", room.Name)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room id cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindPage(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}
