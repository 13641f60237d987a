package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consultorio/dashboard-backend/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver:       DriverSQLite,
		URL:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate())
	assert.True(t, database.HealthCheck())
	assert.True(t, database.DB().Migrator().HasTable("obligations"))
	assert.True(t, database.DB().Migrator().HasTable("clients"))
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
