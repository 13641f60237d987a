package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "oldest", cfg.Schedule.MemoPolicy)
	assert.Equal(t, 1, cfg.Reminder.LeadDays)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:dev.db")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("SCHEDULE_MEMO_CAPACITY", "8")
	t.Setenv("SCHEDULE_MEMO_POLICY", "lru")
	t.Setenv("REMINDER_INTERVAL", "15m")
	t.Setenv("REMINDER_LEAD_DAYS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:dev.db", cfg.Database.URL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 8, cfg.Schedule.MemoCapacity)
	assert.Equal(t, "lru", cfg.Schedule.MemoPolicy)
	assert.Equal(t, 15*time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, 1, cfg.Reminder.LeadDays, "unparsable values keep the default")
}

func TestScheduleConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, ScheduleConfig{}.Location())
	assert.Equal(t, time.UTC, ScheduleConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "America/Sao_Paulo", ScheduleConfig{Timezone: "America/Sao_Paulo"}.Location().String())
}
