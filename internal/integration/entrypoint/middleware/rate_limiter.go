// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/dto"
)

// ErrCodeRateLimited is returned when a client exceeds its request budget.
const ErrCodeRateLimited = "API-010001"

const (
	defaultMaxWrites = 60
	defaultWindow    = time.Minute
	rateKeyPrefix    = "ratelimit:"
)

// windowCounter counts hits per key inside a fixed window.
type windowCounter interface {
	hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter caps write requests per client IP in fixed windows. Reads are
// never limited. With Redis the window is shared by every API instance.
type RateLimiter struct {
	counter   windowCounter
	memory    *memoryCounter
	maxWrites int
	window    time.Duration
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter(clk clock.Clock) *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxWrites, defaultWindow, clk)
}

// NewRateLimiterWithConfig creates an in-process rate limiter.
// A non-positive maxWrites disables limiting.
func NewRateLimiterWithConfig(maxWrites int, window time.Duration, clk clock.Clock) *RateLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	memory := &memoryCounter{entries: make(map[string]*windowEntry), clock: clk}
	return &RateLimiter{
		counter:   memory,
		memory:    memory,
		maxWrites: maxWrites,
		window:    window,
	}
}

// WithRedis moves the counters to Redis. The in-process counter keeps
// serving while Redis is unreachable.
func (rl *RateLimiter) WithRedis(client *redis.Client) *RateLimiter {
	if client != nil {
		rl.counter = &redisCounter{client: client, fallback: rl.memory}
	}
	return rl
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxWrites <= 0 || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(c.Request.Context(), clientIP) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  ErrCodeRateLimited,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	hits, err := rl.counter.hit(ctx, key, rl.window)
	if err != nil {
		slog.Warn("Rate limit counter failed, allowing request", "key", key, "error", err)
		return true
	}
	return hits <= int64(rl.maxWrites)
}

// Reset clears the in-process counters.
func (rl *RateLimiter) Reset() {
	rl.memory.reset()
}

// Cleanup removes expired in-process windows.
func (rl *RateLimiter) Cleanup() {
	rl.memory.cleanup()
}

// StartCleanup runs Cleanup every window until done is closed.
func (rl *RateLimiter) StartCleanup(done <-chan struct{}) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

type windowEntry struct {
	hits    int64
	resetAt time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	clock   clock.Clock
}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	entry, ok := m.entries[key]
	if !ok || now.After(entry.resetAt) {
		m.entries[key] = &windowEntry{hits: 1, resetAt: now.Add(window)}
		return 1, nil
	}
	entry.hits++
	return entry.hits, nil
}

func (m *memoryCounter) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*windowEntry)
}

func (m *memoryCounter) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for key, entry := range m.entries {
		if now.After(entry.resetAt) {
			delete(m.entries, key)
		}
	}
}

// redisCounter keeps one INCR key per client, expiring with the window.
type redisCounter struct {
	client   *redis.Client
	fallback *memoryCounter
}

func (r *redisCounter) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := rateKeyPrefix + key

	hits, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Debug("Redis rate limit unavailable, using in-process counter", "error", err)
		return r.fallback.hit(ctx, key, window)
	}
	if hits == 1 {
		// First hit opens the window.
		if err := r.client.Expire(ctx, redisKey, window).Err(); err != nil {
			slog.Warn("Failed to set rate limit window", "key", redisKey, "error", err)
		}
	}
	return hits, nil
}
