package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
	"fiyattakip/internal/scraper"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

// JobResult represents the result of a tracking job
type JobResult struct {
	Snapshot  *models.ProductSnapshot
	RequestID string
	Duration  time.Duration
}

// TrackJob represents a job to be processed by workers
type TrackJob struct {
	ID         string
	URL        string
	Options    *models.TrackOptions
	ResultChan chan JobResult
	Context    context.Context
	CreatedAt  time.Time
}

// Worker represents a single worker goroutine
type Worker struct {
	ID       int
	JobChan  chan TrackJob
	QuitChan chan bool
	Pool     *WorkerPool
	logger   types.Logger
}

// WorkerPool manages multiple worker goroutines and job queue
type WorkerPool struct {
	config         *config.Config
	workers        []*Worker
	jobQueue       chan TrackJob
	dispatcher     *Dispatcher
	rateLimiter    *RateLimiter
	scraperFactory scraper.ScraperFactory
	logger         types.Logger
	mu             sync.RWMutex
	running        bool
	stats          *PoolStats
}

// PoolStats tracks worker pool statistics
type PoolStats struct {
	mu                    sync.RWMutex
	JobsQueued            int64
	JobsProcessed         int64
	JobsSuccessful        int64
	JobsFailed            int64
	TotalProcessingTime   time.Duration
	AverageProcessingTime time.Duration
}

// NewWorkerPool creates a new worker pool instance
func NewWorkerPool(cfg *config.Config, scraperFactory scraper.ScraperFactory) *WorkerPool {
	logger := logging.GetGlobalLogger()

	pool := &WorkerPool{
		config:         cfg,
		jobQueue:       make(chan TrackJob, cfg.Workers.QueueSize),
		rateLimiter:    NewRateLimiter(cfg),
		scraperFactory: scraperFactory,
		logger:         logger,
		stats:          &PoolStats{},
	}

	pool.workers = make([]*Worker, cfg.Workers.PoolSize)
	for i := 0; i < cfg.Workers.PoolSize; i++ {
		worker := &Worker{
			ID:       i + 1,
			JobChan:  make(chan TrackJob),
			QuitChan: make(chan bool),
			Pool:     pool,
			logger:   logger.WithField("worker_id", i+1),
		}
		pool.workers[i] = worker
	}

	pool.dispatcher = NewDispatcher(pool.jobQueue, pool.workers)

	logger.Info("Worker pool initialized", map[string]interface{}{
		"pool_size": cfg.Workers.PoolSize,
	})
	return pool
}

// Start starts the worker pool
func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.running {
		return fmt.Errorf("worker pool is already running")
	}

	wp.dispatcher.Start()

	for _, worker := range wp.workers {
		go worker.Start()
	}

	wp.running = true
	wp.logger.Info("Worker pool started", map[string]interface{}{
		"workers": len(wp.workers),
	})
	return nil
}

// Stop stops the worker pool gracefully
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.running {
		return nil
	}

	wp.dispatcher.Stop()

	for _, worker := range wp.workers {
		worker.Stop()
	}

	close(wp.jobQueue)
	wp.rateLimiter.Stop()

	wp.running = false
	wp.logger.Info("Worker pool stopped")
	return nil
}

// SubmitJob submits a new tracking job to the pool and waits for the result
func (wp *WorkerPool) SubmitJob(ctx context.Context, url string, options *models.TrackOptions) (*JobResult, error) {
	if !wp.IsRunning() {
		return nil, fmt.Errorf("worker pool is not running")
	}

	domain := extractDomain(url)
	if !wp.rateLimiter.Allow(domain) {
		return nil, fmt.Errorf("rate limit exceeded for domain: %s", domain)
	}

	job := TrackJob{
		ID:         utils.GenerateRequestID(),
		URL:        url,
		Options:    options,
		ResultChan: make(chan JobResult, 1),
		Context:    ctx,
		CreatedAt:  time.Now(),
	}

	wp.stats.mu.Lock()
	wp.stats.JobsQueued++
	wp.stats.mu.Unlock()

	select {
	case wp.jobQueue <- job:
		wp.logger.Info("Job submitted to queue", map[string]interface{}{
			"job_id": job.ID,
			"url":    url,
		})
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("job queue is full, request timed out")
	}

	timeout := wp.config.Workers.Timeout
	if options != nil && options.Timeout > 0 {
		timeout = options.Timeout
	}

	select {
	case result := <-job.ResultChan:
		return &result, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("job processing timed out after %v", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsRunning returns true if the worker pool is running
func (wp *WorkerPool) IsRunning() bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.running
}

// GetStats returns current pool statistics
func (wp *WorkerPool) GetStats() PoolStats {
	wp.stats.mu.RLock()
	defer wp.stats.mu.RUnlock()

	stats := PoolStats{
		JobsQueued:          wp.stats.JobsQueued,
		JobsProcessed:       wp.stats.JobsProcessed,
		JobsSuccessful:      wp.stats.JobsSuccessful,
		JobsFailed:          wp.stats.JobsFailed,
		TotalProcessingTime: wp.stats.TotalProcessingTime,
	}
	if stats.JobsProcessed > 0 {
		stats.AverageProcessingTime = stats.TotalProcessingTime / time.Duration(stats.JobsProcessed)
	}

	return stats
}

// GetRateLimiter exposes the per-domain limiter for stats handlers
func (wp *WorkerPool) GetRateLimiter() *RateLimiter {
	return wp.rateLimiter
}

// Start starts the worker goroutine
func (w *Worker) Start() {
	w.logger.Debug("Worker started")

	for {
		select {
		case job := <-w.JobChan:
			w.processJob(job)
		case <-w.QuitChan:
			w.logger.Debug("Worker stopping")
			return
		}
	}
}

// Stop stops the worker
func (w *Worker) Stop() {
	w.QuitChan <- true
}

// processJob processes a single tracking job
func (w *Worker) processJob(job TrackJob) {
	startTime := time.Now()

	w.logger.Debug("Processing job", map[string]interface{}{
		"job_id": job.ID,
		"url":    job.URL,
	})

	wp := w.Pool
	wp.stats.mu.Lock()
	wp.stats.JobsProcessed++
	wp.stats.mu.Unlock()

	result := w.trackJob(job)

	processingTime := time.Since(startTime)
	result.Duration = processingTime

	wp.stats.mu.Lock()
	wp.stats.TotalProcessingTime += processingTime
	if result.Snapshot != nil && result.Snapshot.Error {
		wp.stats.JobsFailed++
	} else {
		wp.stats.JobsSuccessful++
	}
	wp.stats.mu.Unlock()

	select {
	case job.ResultChan <- result:
		w.logger.Info("Job completed", map[string]interface{}{
			"job_id":          job.ID,
			"processing_time": processingTime.String(),
			"success":         result.Snapshot != nil && !result.Snapshot.Error,
		})
	case <-time.After(100 * time.Millisecond):
		w.logger.Debug("Result channel timeout, client may have disconnected", map[string]interface{}{
			"job_id": job.ID,
		})
	}
}

// trackJob performs the actual scraping work with retries. A snapshot
// carrying the Error flag counts as a failed attempt; the last attempt's
// snapshot is always returned so callers get the sentinel, never nil.
func (w *Worker) trackJob(job TrackJob) JobResult {
	result := JobResult{
		RequestID: job.ID,
	}

	engine := "headed"
	if job.Options != nil && job.Options.Engine != "" {
		engine = job.Options.Engine
	}

	domain := extractDomain(job.URL)

	sc, err := w.Pool.scraperFactory.CreateScraper(engine)
	if err != nil {
		w.Pool.rateLimiter.RecordFailure(domain)
		result.Snapshot = models.FailedSnapshot(job.URL)
		w.logger.Warn("Failed to create scraper", map[string]interface{}{
			"job_id": job.ID,
			"engine": engine,
			"error":  err.Error(),
		})
		return result
	}
	defer sc.Cleanup()

	maxRetries := w.Pool.config.Workers.MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.Debug("Retrying tracking job", map[string]interface{}{
				"job_id":  job.ID,
				"attempt": attempt + 1,
				"url":     job.URL,
			})

			// Exponential backoff
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		snapshot := sc.Track(job.Context, job.URL, job.Options)
		result.Snapshot = snapshot

		if snapshot.Error {
			w.Pool.rateLimiter.RecordFailure(domain)
			continue
		}

		w.Pool.rateLimiter.RecordSuccess(domain)

		w.logger.Debug("Tracking job completed successfully", map[string]interface{}{
			"job_id":  job.ID,
			"title":   snapshot.Title,
			"source":  snapshot.Source,
			"attempt": attempt + 1,
		})

		return result
	}

	return result
}
