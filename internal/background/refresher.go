package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
	"fiyattakip/internal/scraper/workers"
	"fiyattakip/internal/store"
)

// Refresher periodically re-tracks every URL known to the snapshot store
// so price history keeps growing without client traffic. Price drops
// against the stored latest snapshot are logged for the notification
// consumer.
type Refresher struct {
	config    *config.Config
	pool      *workers.PoolManager
	snapshots *store.SnapshotStore
	logger    types.Logger
	quit      chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
	running   bool
}

// NewRefresher creates a new background refresher
func NewRefresher(cfg *config.Config, pool *workers.PoolManager, snapshots *store.SnapshotStore) *Refresher {
	return &Refresher{
		config:    cfg,
		pool:      pool,
		snapshots: snapshots,
		logger:    logging.GetGlobalLogger().WithField("component", "refresher"),
		quit:      make(chan struct{}),
	}
}

// Start launches the refresh loop
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("refresher is already running")
	}
	if r.snapshots == nil {
		return fmt.Errorf("refresher requires a snapshot store")
	}

	r.wg.Add(1)
	go r.loop()

	r.running = true
	r.logger.Info("Background refresher started", map[string]interface{}{
		"interval": r.config.Refresh.Interval.String(),
	})
	return nil
}

// Stop stops the refresh loop and waits for the current cycle to finish
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.quit)
	r.wg.Wait()

	r.running = false
	r.logger.Info("Background refresher stopped")
}

func (r *Refresher) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Refresh.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refreshAll()
		case <-r.quit:
			return
		}
	}
}

// refreshAll re-tracks every stored URL sequentially. The pool's own
// rate limiter spaces out requests per storefront.
func (r *Refresher) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Refresh.Interval)
	defer cancel()

	urls, err := r.snapshots.TrackedURLs(ctx)
	if err != nil {
		r.logger.Error("Failed to list tracked urls", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	r.logger.Info("Refresh cycle started", map[string]interface{}{
		"tracked_urls": len(urls),
	})

	refreshed := 0
	for _, url := range urls {
		select {
		case <-r.quit:
			return
		default:
		}

		if r.refreshOne(ctx, url) {
			refreshed++
		}
	}

	r.logger.Info("Refresh cycle completed", map[string]interface{}{
		"tracked_urls": len(urls),
		"refreshed":    refreshed,
	})
}

func (r *Refresher) refreshOne(ctx context.Context, url string) bool {
	previous, err := r.snapshots.LatestSnapshot(ctx, url)
	if err != nil {
		r.logger.Warn("Failed to read previous snapshot", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}

	result, err := r.pool.SubmitJob(ctx, url, nil)
	if err != nil {
		r.logger.Warn("Refresh job submission failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return false
	}

	snapshot := result.Snapshot
	if snapshot.Error {
		r.logger.Warn("Refresh scrape failed", map[string]interface{}{
			"url": url,
		})
		return false
	}

	if err := r.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		r.logger.Warn("Failed to persist refreshed snapshot", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return false
	}

	if previous != nil && previous.CurrentPrice > 0 && snapshot.CurrentPrice > 0 &&
		snapshot.CurrentPrice < previous.CurrentPrice {
		r.logger.Info("Price drop detected", map[string]interface{}{
			"url":       url,
			"source":    snapshot.Source,
			"title":     snapshot.Title,
			"old_price": previous.CurrentPrice,
			"new_price": snapshot.CurrentPrice,
		})
	}

	return true
}
