// Package clock abstracts wall-clock reads so that timestamp stamping and
// date-window aggregation can be pinned to a known instant in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always reports the same instant until advanced.
type Fixed struct {
	instant time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{instant: t}
}

func (f *Fixed) Now() time.Time { return f.instant }

func (f *Fixed) Set(t time.Time) { f.instant = t }

func (f *Fixed) Advance(d time.Duration) { f.instant = f.instant.Add(d) }
