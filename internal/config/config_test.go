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

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "shindan.db", cfg.DatabasePath)
	assert.InDelta(t, 0.7, cfg.ConfidenceThreshold, 1e-9)
	assert.Equal(t, "shindan", cfg.ServiceName)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SHINDAN_PORT", "9090")
	t.Setenv("SHINDAN_DB_PATH", ":memory:")
	t.Setenv("SHINDAN_CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("SHINDAN_RATE_LIMIT_ENABLED", "false")
	t.Setenv("SHINDAN_READ_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.InDelta(t, 0.8, cfg.ConfidenceThreshold, 1e-9)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	// Malformed values fall back to defaults rather than failing startup.
	t.Setenv("SHINDAN_PORT", "not-a-port")
	t.Setenv("SHINDAN_READ_TIMEOUT", "five seconds")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	t.Setenv("SHINDAN_CONFIDENCE_THRESHOLD", "1.5")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHINDAN_CONFIDENCE_THRESHOLD")
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("SHINDAN_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadRateLimit(t *testing.T) {
	t.Setenv("SHINDAN_RATE_LIMIT_RPS", "-1")
	_, err := Load()
	assert.Error(t, err)
}
