package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "query-hub", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.True(t, cfg.App.SeedOnStart)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "forum-staging")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DIAL_TIMEOUT", "500ms")
	t.Setenv("SEED_ON_START", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "forum-staging", cfg.App.Name)
	assert.True(t, cfg.App.Debug)
	assert.False(t, cfg.App.SeedOnStart)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.DialTimeout)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamodb")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("APP_DEBUG", "yep")
	t.Setenv("POSTGRES_CONNECT_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, 10*time.Second, cfg.Postgres.ConnectTimeout)
}
