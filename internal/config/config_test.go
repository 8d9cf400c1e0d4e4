package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, 10, cfg.Workers.PoolSize)
	assert.Equal(t, 100, cfg.Workers.QueueSize)
	assert.Equal(t, 2, cfg.Workers.MaxRetries)

	assert.Equal(t, 35*time.Second, cfg.Scraper.NavigationTimeout)
	assert.Equal(t, 8*time.Second, cfg.Scraper.ReadinessTimeout)
	assert.True(t, cfg.Scraper.HeadlessMode)
	assert.True(t, cfg.Scraper.BlockResources)
	assert.Contains(t, cfg.Scraper.AcceptLanguage, "tr-TR")
	assert.False(t, cfg.Scraper.Captcha.EnableAutoSolve)

	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SnapshotTTL)
	assert.Equal(t, 100, cfg.Redis.HistoryEntries)

	assert.False(t, cfg.Refresh.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Refresh.Interval)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCRAPER_NAVIGATION_TIMEOUT", "10s")
	t.Setenv("WORKER_POOL_SIZE", "3")
	t.Setenv("REFRESH_ENABLED", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Scraper.NavigationTimeout)
	assert.Equal(t, 3, cfg.Workers.PoolSize)
	assert.True(t, cfg.Refresh.Enabled)
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_CAPTCHA_KEY", "secret123")

	assert.Equal(t, "key: secret123", expandEnvVars("key: ${TEST_CAPTCHA_KEY}"))
	assert.Equal(t, "key: secret123", expandEnvVars("key: $TEST_CAPTCHA_KEY"))
	// Unset variables are left intact
	assert.Equal(t, "key: ${UNSET_VALUE_XYZ}", expandEnvVars("key: ${UNSET_VALUE_XYZ}"))
}
