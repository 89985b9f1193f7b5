package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.SkipAuth)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.NDI.PollInterval)
	assert.Equal(t, time.Hour, cfg.NDI.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.Handoff.TTL)
}

func TestNewConfig_FunctionalOptions(t *testing.T) {
	cfg := NewConfig(
		WithEnvironment("production"),
		WithPort(9000),
		WithSkipAuth(),
		WithRedisAddr("redis.internal:6379"),
		WithNDIPollInterval(10*time.Second),
		WithHandoffTTL(time.Hour),
	)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.SkipAuth)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Second, cfg.NDI.PollInterval)
	assert.Equal(t, time.Hour, cfg.Handoff.TTL)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "8443")
	t.Setenv("NDI_BASE_URL", "https://ndi.example/v1")
	t.Setenv("NDI_POLL_INTERVAL", "7s")
	t.Setenv("NDI_SESSION_TTL", "20m")
	t.Setenv("CBS_LOOKUP_URL", "https://cbs.example/lookup")
	t.Setenv("HANDOFF_TTL", "45m")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, "https://ndi.example/v1", cfg.NDI.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.NDI.PollInterval)
	assert.Equal(t, 20*time.Minute, cfg.NDI.SessionTTL)
	assert.Equal(t, "https://cbs.example/lookup", cfg.CBS.LookupURL)
	assert.Equal(t, 45*time.Minute, cfg.Handoff.TTL)
}

func TestNewConfigFromEnv_BadValuesJoinErrors(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SKIP_AUTH", "not-a-bool")

	_, err := NewConfigFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-port")
	assert.Contains(t, err.Error(), "not-a-bool")
}

func TestNewConfigFromEnv_OptionsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "8443")

	cfg, err := NewConfigFromEnv(WithPort(9999))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
}
