package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"DB_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "RATE_LIMIT_PER_MINUTE", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":3000", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.DB.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", ":8081")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_PATH", "/tmp/checkin.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/checkin.db", cfg.DB.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "one")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.SeedDemoData)
}
