package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be moved to any instant. It stays frozen until
// moved again, so every request in a scenario sees the same "today".
type Time struct {
	mu      sync.RWMutex
	current time.Time
}

func NewTime() *Time {
	return &Time{current: time.Now()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

func (t *Time) AddDays(days int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.AddDate(0, 0, days)
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}
