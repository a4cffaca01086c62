package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-registry/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_PATH", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_QUEUE_SIZE", "")
	t.Setenv("REDIS_PUBLISH_TIMEOUT_MS", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "funcionarios.db", cfg.Store.Path)
	assert.True(t, cfg.Store.RunMigrations)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "funcionarios.events", cfg.Redis.Channel)
	assert.Equal(t, 256, cfg.Redis.QueueSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.PublishTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("STORE_PATH", "/tmp/registry.db")
	t.Setenv("STORE_RUN_MIGRATIONS", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "/tmp/registry.db", cfg.Store.Path)
	assert.False(t, cfg.Store.RunMigrations)
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "nedb")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported STORE_DRIVER")
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REDIS_DB", "x")

	_, err := config.Load()
	require.Error(t, err)
}
