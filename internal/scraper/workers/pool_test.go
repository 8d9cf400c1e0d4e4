package workers

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiyattakip/internal/config"
	"fiyattakip/internal/scraper"
	"fiyattakip/pkg/models"
)

type fakeScraper struct {
	calls    *int64
	failures int64
}

func (f *fakeScraper) Track(_ context.Context, url string, _ *models.TrackOptions) *models.ProductSnapshot {
	call := atomic.AddInt64(f.calls, 1)
	if call <= f.failures {
		return models.FailedSnapshot(url)
	}
	return &models.ProductSnapshot{
		Title:        "Test Ürün",
		CurrentPrice: 99.9,
		Source:       "trendyol",
		URL:          url,
		InStock:      true,
		Category:     "Fashion",
		Gender:       models.GenderUnisex,
	}
}

func (f *fakeScraper) Cleanup()        {}
func (f *fakeScraper) IsHealthy() bool { return true }

type fakeFactory struct {
	calls    int64
	failures int64
}

func (f *fakeFactory) CreateScraper(string) (scraper.Scraper, error) {
	return &fakeScraper{calls: &f.calls, failures: f.failures}, nil
}

func (f *fakeFactory) GetSupportedEngines() []string {
	return []string{"headed"}
}

func poolConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Workers.PoolSize = 2
	cfg.Workers.QueueSize = 8
	cfg.Workers.RateLimit = 6000
	cfg.Workers.MaxRetries = 1
	return cfg
}

func TestSubmitJobReturnsSnapshot(t *testing.T) {
	factory := &fakeFactory{}
	pool := NewWorkerPool(poolConfig(t), factory)
	require.NoError(t, pool.Start())
	defer pool.Stop()

	result, err := pool.SubmitJob(context.Background(), "https://www.trendyol.com/p1", nil)

	require.NoError(t, err)
	require.NotNil(t, result.Snapshot)
	assert.False(t, result.Snapshot.Error)
	assert.Equal(t, "Test Ürün", result.Snapshot.Title)
	assert.NotEmpty(t, result.RequestID)

	stats := pool.GetStats()
	assert.Equal(t, int64(1), stats.JobsQueued)
	assert.Equal(t, int64(1), stats.JobsSuccessful)
	assert.Equal(t, int64(0), stats.JobsFailed)
}

func TestSubmitJobRetriesFailedSnapshots(t *testing.T) {
	// First attempt fails, the retry succeeds
	factory := &fakeFactory{failures: 1}
	pool := NewWorkerPool(poolConfig(t), factory)
	require.NoError(t, pool.Start())
	defer pool.Stop()

	result, err := pool.SubmitJob(context.Background(), "https://www.trendyol.com/p1", nil)

	require.NoError(t, err)
	assert.False(t, result.Snapshot.Error)
	assert.Equal(t, int64(2), atomic.LoadInt64(&factory.calls))
}

func TestSubmitJobExhaustedRetriesReturnSentinel(t *testing.T) {
	// Every attempt fails; the caller still gets a snapshot, never nil
	factory := &fakeFactory{failures: 100}
	pool := NewWorkerPool(poolConfig(t), factory)
	require.NoError(t, pool.Start())
	defer pool.Stop()

	result, err := pool.SubmitJob(context.Background(), "https://www.trendyol.com/p1", nil)

	require.NoError(t, err)
	require.NotNil(t, result.Snapshot)
	assert.True(t, result.Snapshot.Error)
	assert.Equal(t, int64(2), atomic.LoadInt64(&factory.calls), "maxRetries+1 attempts")
}

func TestSubmitJobRejectedWhenNotRunning(t *testing.T) {
	pool := NewWorkerPool(poolConfig(t), &fakeFactory{})

	_, err := pool.SubmitJob(context.Background(), "https://www.trendyol.com/p1", nil)
	assert.Error(t, err)
}
