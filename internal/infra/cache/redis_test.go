package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := HealthChecker(client)
	assert.True(t, check())

	mr.Close()
	assert.False(t, check())
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := NewRedisClient(&config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisClient(&config.RedisConfig{URL: "redis://" + addr})
	assert.Error(t, err)
}
