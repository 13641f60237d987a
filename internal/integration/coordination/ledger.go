package coordination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
)

const (
	ledgerPrefix = "reminder:"
	// ledgerTTL outlives the day a reminder belongs to, whatever the zone.
	ledgerTTL = 36 * time.Hour
)

func ledgerKey(obligationID string, day time.Time) string {
	return ledgerPrefix + obligationID + ":" + day.Format("2006-01-02")
}

// RedisLedger implements adapter.ReminderLedger with SET NX.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger creates a ledger on client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

// MarkSent records the reminder and reports whether it was the first one
// for that obligation on that day.
func (l *RedisLedger) MarkSent(ctx context.Context, obligationID string, day time.Time) (bool, error) {
	fresh, err := l.client.SetNX(ctx, ledgerKey(obligationID, day), 1, ledgerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}
	return fresh, nil
}

// MemoryLedger implements adapter.ReminderLedger within one process. Only
// the most recent day is retained.
type MemoryLedger struct {
	mu   sync.Mutex
	day  string
	sent map[string]struct{}
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{sent: make(map[string]struct{})}
}

// MarkSent records the reminder and reports whether it was the first one
// for that obligation on that day.
func (l *MemoryLedger) MarkSent(_ context.Context, obligationID string, day time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d := day.Format("2006-01-02")
	if d > l.day {
		l.day = d
		l.sent = make(map[string]struct{})
	}

	key := ledgerKey(obligationID, day)
	if _, ok := l.sent[key]; ok {
		return false, nil
	}
	l.sent[key] = struct{}{}
	return true, nil
}

var (
	_ adapter.ReminderLedger = (*RedisLedger)(nil)
	_ adapter.ReminderLedger = (*MemoryLedger)(nil)
)
