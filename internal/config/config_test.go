package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socraticlabs/council/backend/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.False(t, cfg.Server.Development)
	assert.Equal(t, 120*time.Second, cfg.Relay.DefaultTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("DEV", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RELAY_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.True(t, cfg.Server.Development)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Relay.DefaultTimeout)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("RELAY_TIMEOUT", "not-a-duration")

	cfg := config.LoadOrDefault()
	assert.Equal(t, 120*time.Second, cfg.Relay.DefaultTimeout)
}
