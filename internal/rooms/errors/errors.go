package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrLockHeld = errors.New("room lock already held")
)
