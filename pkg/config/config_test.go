package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeMock, cfg.Backend.Mode)
	assert.True(t, cfg.Backend.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "stmarys", cfg.Backend.DefaultTenant)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 300*time.Millisecond, cfg.Mock.Latency)
	assert.True(t, cfg.Mock.Seed)
	assert.False(t, cfg.Activity.Enabled)
	assert.Equal(t, "/api", cfg.APIPrefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_MODE", "REAL")
	t.Setenv("BACKEND_URL", "https://backend.example.com/api/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("MOCK_LATENCY", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeReal, cfg.Backend.Mode)
	assert.Equal(t, "https://backend.example.com/api", cfg.Backend.URL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 300*time.Millisecond, cfg.Mock.Latency)
}

func TestLoadRejectsUnknownModes(t *testing.T) {
	t.Setenv("API_MODE", "shadow")
	t.Setenv("SESSION_BACKEND", "memcached")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeMock, cfg.Backend.Mode)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
}
