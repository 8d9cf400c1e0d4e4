package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiyattakip/internal/config"
)

func limiterConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Workers.RateLimit = 6000
	return cfg
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(t))
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("www.trendyol.com"), "request %d within burst", i)
	}
}

func TestRateLimiterIsPerDomain(t *testing.T) {
	cfg := limiterConfig(t)
	cfg.Workers.RateLimit = 1 // ~1 request a minute, burst of 5
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		rl.Allow("www.zara.com")
	}
	assert.False(t, rl.Allow("www.zara.com"), "burst exhausted")
	assert.True(t, rl.Allow("www.bershka.com"), "other domains unaffected")
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(t))
	defer rl.Stop()

	domain := "www.koton.com"
	assert.True(t, rl.Allow(domain))

	for i := 0; i < 5; i++ {
		rl.RecordFailure(domain)
	}

	assert.False(t, rl.Allow(domain), "circuit open after max failures")

	stats := rl.GetDomainStats(domain)
	assert.Equal(t, "open", stats["circuit_state"])
	assert.Equal(t, 5, stats["failure_count"])
}

func TestCircuitBreakerIgnoresScatteredFailures(t *testing.T) {
	rl := NewRateLimiter(limiterConfig(t))
	defer rl.Stop()

	domain := "www.mango.com"
	for i := 0; i < 4; i++ {
		rl.RecordFailure(domain)
	}

	assert.True(t, rl.Allow(domain), "circuit stays closed below the threshold")
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "www.zara.com", extractDomain("https://www.zara.com/tr/tr/p1.html"))
	assert.Equal(t, "unknown", extractDomain("://not-a-url"))
}
