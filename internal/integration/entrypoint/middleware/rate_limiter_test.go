package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/consultorio/dashboard-backend/internal/domain/clock"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/things", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func do(r *gin.Engine, method string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/things", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_LimitsWrites(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	rl := NewRateLimiterWithConfig(2, time.Minute, clk)
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost))

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet))

	clk.Advance(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
}

func TestRateLimiter_Disabled(t *testing.T) {
	clk := clock.NewFixed(time.Now())
	r := newLimitedRouter(NewRateLimiterWithConfig(0, time.Minute, clk))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	rl := NewRateLimiterWithConfig(1, time.Minute, clk)
	assert.True(t, rl.allow(ctx, "a"))
	assert.False(t, rl.allow(ctx, "a"))

	clk.Advance(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.memory.entries)
}

func TestRateLimiter_Redis(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clk := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newLimitedRouter(NewRateLimiterWithConfig(2, time.Minute, clk).WithRedis(client))

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost))
	assert.True(t, srv.Exists("ratelimit:10.0.0.1"))

	// A second instance shares the window.
	other := newLimitedRouter(NewRateLimiterWithConfig(2, time.Minute, clk).WithRedis(client))
	assert.Equal(t, http.StatusTooManyRequests, do(other, http.MethodPost))

	srv.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
}

func TestRateLimiter_RedisDownFallsBack(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	srv.Close()

	clk := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	r := newLimitedRouter(NewRateLimiterWithConfig(1, time.Minute, clk).WithRedis(client))

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost))
}
