package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/consultorio/dashboard-backend/internal/domain/calendar"
	"github.com/consultorio/dashboard-backend/internal/domain/entity"
)

// EvictionPolicy selects which entry a full Memo drops.
type EvictionPolicy string

const (
	// EvictOldest drops the entry inserted first; reads do not refresh.
	EvictOldest EvictionPolicy = "oldest"
	// EvictLeastRecentlyUsed drops the entry read or written longest ago.
	EvictLeastRecentlyUsed EvictionPolicy = "lru"
)

// ParseEvictionPolicy validates a policy name.
func ParseEvictionPolicy(s string) (EvictionPolicy, error) {
	switch p := EvictionPolicy(s); p {
	case EvictOldest, EvictLeastRecentlyUsed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown eviction policy %q", s)
	}
}

// MemoStats reports cache effectiveness.
type MemoStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Memo is a bounded, caller-owned cache of generated schedules keyed by a
// content hash of their Params. It is safe for concurrent use.
type Memo struct {
	mu     sync.Mutex
	cache  *simplelru.LRU
	policy EvictionPolicy
	stats  MemoStats
}

// NewMemo creates a memo holding at most capacity schedules.
func NewMemo(capacity int, policy EvictionPolicy) (*Memo, error) {
	if _, err := ParseEvictionPolicy(string(policy)); err != nil {
		return nil, err
	}

	m := &Memo{policy: policy}
	cache, err := simplelru.NewLRU(capacity, func(_ interface{}, _ interface{}) {
		m.stats.Evictions++
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule memo: %w", err)
	}
	m.cache = cache
	return m, nil
}

// Generate returns the schedule for p, computing it at most once while it
// stays cached. The returned slice is always a private copy.
func (m *Memo) Generate(p Params) []time.Time {
	key, err := memoKeyFor(p)
	if err != nil {
		return Generate(p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		cached interface{}
		ok     bool
	)
	if m.policy == EvictLeastRecentlyUsed {
		cached, ok = m.cache.Get(key)
	} else {
		cached, ok = m.cache.Peek(key)
	}
	if ok {
		m.stats.Hits++
		return copyDates(cached.([]time.Time))
	}

	m.stats.Misses++
	dates := Generate(p)
	m.cache.Add(key, copyDates(dates))
	return dates
}

// Len returns the number of cached schedules.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (m *Memo) Stats() MemoStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Purge drops every cached schedule. Counters are kept.
func (m *Memo) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	evictions := m.stats.Evictions
	m.cache.Purge()
	m.stats.Evictions = evictions
}

// memoKey is the canonical, hashable form of Params. Fields that the kind
// ignores are zeroed so equivalent plans share an entry.
type memoKey struct {
	Kind    string
	Start   string
	Zone    string
	Periods int
	Weekday int
	DueDay  int
}

func memoKeyFor(p Params) (uint64, error) {
	start := calendar.DateOnly(p.Start)
	k := memoKey{
		Kind:    string(p.Kind),
		Start:   start.Format("2006-01-02"),
		Zone:    start.Location().String(),
		Periods: p.Periods,
	}
	switch p.Kind {
	case entity.ObligationKindWeekly:
		k.Weekday = int(calendar.WeekdayFromInt(int(p.Weekday)))
	case entity.ObligationKindMonthly:
		k.DueDay = p.DueDay
	}
	return hashstructure.Hash(k, hashstructure.FormatV2, nil)
}

func copyDates(in []time.Time) []time.Time {
	out := make([]time.Time, len(in))
	copy(out, in)
	return out
}
