// Package clock abstracts wall-clock access so that time-dependent rules,
// like the cancellation cutoff, can be exercised deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
