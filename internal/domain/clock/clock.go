// Package clock provides the "now" provider injected into date-sensitive
// domain logic.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed creates a Fixed clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// InLocation wraps a clock so every reading is expressed in loc.
func InLocation(c Clock, loc *time.Location) Clock {
	if loc == nil {
		return c
	}
	return locatedClock{inner: c, loc: loc}
}

type locatedClock struct {
	inner Clock
	loc   *time.Location
}

func (l locatedClock) Now() time.Time {
	return l.inner.Now().In(l.loc)
}
