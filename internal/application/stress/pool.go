package stress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool manages a fixed pool of CPU-burn workers.
type Pool struct {
	size       int
	maxSeconds int
	logger     *zap.Logger

	jobs   chan job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

type job struct {
	seconds int
	done    chan struct{}
}

// NewPool creates a new stress pool. maxSeconds caps the duration of a
// single burn regardless of what the caller requests.
func NewPool(size, maxSeconds int, logger *zap.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		size:       size,
		maxSeconds: maxSeconds,
		logger:     logger,
		jobs:       make(chan job),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker goroutines.
func (p *Pool) Start() error {
	p.logger.Info("starting stress pool",
		zap.Int("size", p.size),
		zap.Int("max_seconds", p.maxSeconds))

	for i := 0; i < p.size; i++ {
		workerID := fmt.Sprintf("stress-%d", i)

		p.wg.Add(1)
		go p.run(workerID)
	}

	return nil
}

// Shutdown gracefully shuts down the pool
func (p *Pool) Shutdown(ctx context.Context) error {
	p.logger.Info("shutting down stress pool")

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("stress pool shut down complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout")
	}
}

// Burn occupies a worker with a busy loop for min(seconds, maxSeconds)
// wall-clock seconds and returns the seconds actually stressed. The caller
// blocks until a worker is free and the burn completes.
func (p *Pool) Burn(ctx context.Context, seconds int) (int, error) {
	if seconds > p.maxSeconds {
		seconds = p.maxSeconds
	}
	if seconds < 0 {
		seconds = 0
	}

	j := job{seconds: seconds, done: make(chan struct{})}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-p.ctx.Done():
		return 0, fmt.Errorf("stress pool stopped")
	}

	select {
	case <-j.done:
		return seconds, nil
	case <-p.ctx.Done():
		return 0, fmt.Errorf("stress pool stopped")
	}
}

// run is the main worker loop
func (p *Pool) run(workerID string) {
	defer p.wg.Done()

	for {
		select {
		case j := <-p.jobs:
			p.logger.Info("stress starting",
				zap.String("worker_id", workerID),
				zap.Int("seconds", j.seconds),
				zap.Int("max_seconds", p.maxSeconds))

			start := time.Now()
			burn(time.Duration(j.seconds) * time.Second)
			close(j.done)

			p.logger.Info("stress completed",
				zap.String("worker_id", workerID),
				zap.Int("seconds", j.seconds),
				zap.Duration("elapsed", time.Since(start)))
		case <-p.ctx.Done():
			return
		}
	}
}

// burn consumes CPU for d via non-suspending computation.
func burn(d time.Duration) {
	end := time.Now().Add(d)
	for time.Now().Before(end) {
		sum := 0
		for i := 0; i < 10_000; i++ {
			sum += i * i
		}
		_ = sum
	}
}
