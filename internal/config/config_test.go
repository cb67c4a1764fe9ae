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

	assert.Equal(t, "http://localhost:8080", cfg.GatewayURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 10, cfg.RecommendationLimit)
	assert.Equal(t, 6, cfg.StatCategories)
	assert.Equal(t, 6, cfg.TrendMonths)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LIBRARIUM_GATEWAY_URL", "https://library.example.com")
	t.Setenv("LIBRARIUM_HTTP_TIMEOUT", "30s")
	t.Setenv("LIBRARIUM_LOG_LEVEL", "debug")
	t.Setenv("LIBRARIUM_REC_LIMIT", "5")
	t.Setenv("LIBRARIUM_TREND_MONTHS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://library.example.com", cfg.GatewayURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.RecommendationLimit)
	assert.Equal(t, 12, cfg.TrendMonths)
}

func TestLoadRejectsInvalidInt(t *testing.T) {
	t.Setenv("LIBRARIUM_REC_LIMIT", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIBRARIUM_REC_LIMIT")
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("LIBRARIUM_HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIBRARIUM_HTTP_TIMEOUT")
}
