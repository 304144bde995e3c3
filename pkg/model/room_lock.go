package model

import "time"

// RoomLock is an advisory lock document guarding the read-check-write cycle
// of a single room. The unique _id makes concurrent inserts for the same
// room fail with a duplicate key error; ExpiresAt backs a TTL index so stale
// locks clear themselves.
type RoomLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
