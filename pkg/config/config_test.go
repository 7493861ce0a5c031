package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8087", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.NotEmpty(t, cfg.MarketData.ChartBaseURL)
	assert.NotEmpty(t, cfg.MarketData.QuoteBaseURL)
	assert.Greater(t, cfg.MarketData.RatePerSecond, 0.0)
	assert.Equal(t, 10000.0, cfg.Simulation.InitialCash)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SIM_INITIAL_CASH", "250000")
	t.Setenv("MARKETDATA_RATE_PER_SECOND", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 250000.0, cfg.Simulation.InitialCash)
	assert.Equal(t, 2.5, cfg.MarketData.RatePerSecond)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))

	t.Setenv("X_BOOL", "true")
	assert.True(t, getEnvAsBool("X_BOOL", false))

	t.Setenv("X_DUR", "90s")
	assert.Equal(t, "1m30s", getEnvAsDuration("X_DUR", "1h").String())
}
