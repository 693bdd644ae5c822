package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// taskQueue provides read access to the tasks to be processed
	taskQueue TaskQueueReader

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger

	// errorHandler is called when a task execution fails
	// If nil, errors are only logged
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(taskQueue TaskQueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	// Apply defaults for invalid config values
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	// Create a cancelable context for shutdown coordination
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		wg:          sync.WaitGroup{},
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines. Each worker consumes tasks from
// the queue until the queue channel is closed or the pool is stopped.
func (p *WorkerPool) Start() {
	p.logger.Info("starting worker pool", "worker_count", p.workerCount)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker is the main loop of a single worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.With("worker_id", id)
	log.Debug("worker started")

	for {
		select {
		case <-p.ctx.Done():
			log.Debug("worker stopping on shutdown signal")
			return
		case t, ok := <-p.taskQueue.GetChannel():
			if !ok {
				log.Debug("worker stopping on closed queue")
				return
			}
			p.runTask(log, t)
		}
	}
}

// runTask executes a single task, isolating panics so a misbehaving task
// cannot take down the worker.
func (p *WorkerPool) runTask(log *slog.Logger, t Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"panic", r)
		}
	}()

	log.Debug("executing task",
		"task_id", t.ID(),
		"task_type", t.Type())

	if err := t.Execute(p.ctx); err != nil {
		log.Error("task execution failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		if p.errorHandler != nil {
			p.errorHandler(t, err)
		}
		return
	}

	log.Debug("task executed successfully",
		"task_id", t.ID(),
		"task_type", t.Type())
}

// Stop signals all workers to stop and waits for them to finish their
// current task. Tasks still buffered in the queue are not drained.
func (p *WorkerPool) Stop() {
	p.logger.Info("stopping worker pool")
	p.cancel()
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}
