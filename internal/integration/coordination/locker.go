// Package coordination implements cross-request guards: the per-plan resync
// lock and the daily reminder ledger. Redis backs both in production; the
// in-memory variants serve single-process deployments and tests.
package coordination

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
)

const (
	lockPrefix     = "lock:"
	defaultLockTTL = 30 * time.Second
)

// unlockScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is left alone.
var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// RedisLocker implements adapter.PlanLocker with SET NX PX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker. A non-positive ttl uses 30s.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

// TryLock attempts to take key without waiting.
func (l *RedisLocker) TryLock(ctx context.Context, key string) (adapter.PlanLock, bool, error) {
	token := uuid.NewString()
	redisKey := lockPrefix + key

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &redisLock{client: l.client, key: redisKey, token: token}, true, nil
}

type redisLock struct {
	client *redis.Client
	key    string
	token  string
}

func (l *redisLock) Release(ctx context.Context) error {
	n, err := unlockScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	if n == 0 {
		slog.Warn("Lock expired before release", "key", l.key)
	}
	return nil
}

// MemoryLocker implements adapter.PlanLocker within one process.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]string
}

// NewMemoryLocker creates an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]string)}
}

// TryLock attempts to take key without waiting.
func (l *MemoryLocker) TryLock(_ context.Context, key string) (adapter.PlanLock, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[key]; taken {
		return nil, false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return &memoryLock{locker: l, key: key, token: token}, true, nil
}

type memoryLock struct {
	locker *MemoryLocker
	key    string
	token  string
}

func (l *memoryLock) Release(context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()

	if l.locker.held[l.key] == l.token {
		delete(l.locker.held, l.key)
	}
	return nil
}

var (
	_ adapter.PlanLocker = (*RedisLocker)(nil)
	_ adapter.PlanLocker = (*MemoryLocker)(nil)
)
