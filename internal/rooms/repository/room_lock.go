package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	roomserrors "roombook/internal/rooms/errors"
	"roombook/pkg/config"
	"roombook/pkg/model"
)

const LockCollectionName = "Room_locks"

// RoomLockRepository provides an advisory lock per room. It serializes the
// load-check-mutate-save cycle so two concurrent bookings cannot both see an
// overlapping window as free.
type RoomLockRepository interface {
	Acquire(ctx context.Context, roomID string) (string, error)
	Release(ctx context.Context, lockID string) error
}

type mongoRoomLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire inserts a lock document keyed by room id. A duplicate key error
// means another request holds the room.
func (r *mongoRoomLockRepository) Acquire(ctx context.Context, roomID string) (string, error) {
	lock := &model.RoomLock{
		ID:        fmt.Sprintf("room_lock_%s", roomID),
		ExpiresAt: time.Now().Add(r.cfg.LockTTL),
		CreatedAt: time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", roomserrors.ErrLockHeld
		}
		return "", fmt.Errorf("failed to acquire room lock: %w", err)
	}

	return lock.ID, nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, lockID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID}); err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}
	return nil
}
