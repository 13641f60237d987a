package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisConn   *redis.Client
)

// NewRedis returns a client for the shared in-process Redis server.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = srv
		redisConn = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	})
	return redisConn
}

// RedisKeys lists the keys matching pattern on the shared server.
func RedisKeys(pattern string) ([]string, error) {
	return NewRedis().Keys(context.TODO(), pattern).Result()
}

// FastForwardRedis expires keys as if d had elapsed. Miniredis does not
// follow the wall clock, so simulated days must be pushed explicitly.
func FastForwardRedis(d time.Duration) {
	NewRedis()
	redisServer.FastForward(d)
}

// ClearRedis drops every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
