package workers

import (
	"sync"

	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
)

// Dispatcher manages job distribution to workers
type Dispatcher struct {
	jobQueue chan TrackJob
	workers  []*Worker
	quit     chan bool
	logger   types.Logger
	mu       sync.RWMutex
	running  bool
}

// NewDispatcher creates a new job dispatcher
func NewDispatcher(jobQueue chan TrackJob, workers []*Worker) *Dispatcher {
	return &Dispatcher{
		jobQueue: jobQueue,
		workers:  workers,
		quit:     make(chan bool),
		logger:   logging.GetGlobalLogger().WithField("component", "dispatcher"),
	}
}

// Start starts the dispatcher
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}

	go d.dispatch()

	d.running = true
	d.logger.Info("Job dispatcher started", map[string]interface{}{
		"workers": len(d.workers),
	})
}

// Stop stops the dispatcher
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	d.quit <- true

	d.running = false
	d.logger.Info("Job dispatcher stopped")
}

// dispatch assigns each queued job to exactly one worker, round-robin
func (d *Dispatcher) dispatch() {
	workerIndex := 0

	for {
		select {
		case job := <-d.jobQueue:
		assignLoop:
			for {
				worker := d.workers[workerIndex]
				workerIndex = (workerIndex + 1) % len(d.workers)
				select {
				case worker.JobChan <- job:
					break assignLoop
				default:
					// Worker is busy, try next one
					continue
				}
			}

		case <-d.quit:
			return
		}
	}
}

// IsRunning returns true if dispatcher is running
func (d *Dispatcher) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}
