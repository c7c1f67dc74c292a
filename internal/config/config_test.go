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

	assert.Equal(t, 5*time.Minute, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.TrendsPollInterval)
	assert.Equal(t, 10*time.Second, cfg.JSONProxyTimeout)
	assert.Equal(t, 15*time.Second, cfg.CORSProxyTimeout)
	assert.Equal(t, 10, cfg.MaxItemsPerSource)
	assert.Equal(t, 20, cfg.MaxItems)
	assert.Equal(t, "in", cfg.NewsAPICountry)
	assert.Empty(t, cfg.NewsAPIKey)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "5000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL_MS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval_ms")
}
