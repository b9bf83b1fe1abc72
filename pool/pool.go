package pool

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskline-go/taskline/internal/backoff"
)

// task is the type-erased unit of work held by the queue. Submit binds
// the caller's typed callable and its future into run before pushing, so
// the queue and workers never see concrete result types.
type task struct {
	id  int64
	run func(ctx context.Context)
}

// TaskFunc is a unit of work accepted by Submit. Arguments must be bound
// by the caller (capture by value; the closure must not depend on caller
// stack lifetime beyond the call).
//
// Type parameters:
//   - R: The result type delivered through the returned Future
type TaskFunc[R any] func(ctx context.Context) (R, error)

// Pool is a fixed set of reusable workers fed from a shared FIFO queue.
// It is created with New, accepts work through Submit, and is permanently
// retired with Shutdown. A Pool must not be copied.
type Pool struct {
	queue *taskQueue
	conf  *config
	retry backoff.Strategy // nil unless retries are enabled

	workerCount int
	taskIDs     atomic.Int64
	closed      atomic.Bool
	done        chan struct{} // closed once every worker has exited

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// New creates a pool and starts workerCount workers immediately. The
// workers block on the queue until work arrives or shutdown begins.
//
// workerCount must be non-negative. Zero is legal but almost never what
// you want: submissions are accepted and queued, yet nothing ever
// executes them, so their futures never fulfill (see the package
// documentation).
//
// Example:
//
//	p, err := pool.New(8, pool.WithRateLimit(100, 10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(0)
func New(workerCount int, opts ...Option) (*Pool, error) {
	if workerCount < 0 {
		return nil, ErrNegativeWorkers
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:       newTaskQueue(cfg.taskBuffer),
		conf:        cfg,
		workerCount: workerCount,
		done:        make(chan struct{}),
	}

	if cfg.maxAttempts > 1 {
		p.retry = backoff.New(cfg.backoffKind, cfg.initialDelay, cfg.maxDelay, cfg.jitterFactor)
	}

	var g errgroup.Group
	for i := 0; i < workerCount; i++ {
		workerID := int64(i)
		g.Go(func() error {
			return p.worker(ctx, workerID)
		})
	}

	go func() {
		_ = g.Wait()
		cancel()
		close(p.done)
	}()

	return p, nil
}

// Submit binds fn into a task paired with a fresh future, pushes it onto
// the queue and wakes one idle worker. It never blocks on worker
// availability and returns immediately.
//
// Once Shutdown has begun, Submit fails with ErrPoolClosed: nothing is
// queued, no worker is woken, and fn is never invoked. The rejection
// check and the push are atomic under the queue lock.
//
// Submit is a package-level function because methods cannot introduce
// type parameters.
//
// Example:
//
//	fut, err := pool.Submit(p, func(ctx context.Context) (string, error) {
//	    return fetch(ctx, url)
//	})
//	if err != nil {
//	    return err // pool closed
//	}
//	body, err := fut.Get()
func Submit[R any](p *Pool, fn TaskFunc[R]) (*Future[R], error) {
	id := p.taskIDs.Add(1)
	fut := newFuture[R](id)

	t := task{
		id: id,
		run: func(ctx context.Context) {
			value, err := runTask(ctx, p, id, fn)
			if err != nil {
				p.failed.Add(1)
			}
			p.completed.Add(1)
			fut.complete(value, err)
		},
	}

	if err := p.queue.push(t); err != nil {
		return nil, err
	}

	p.submitted.Add(1)
	return fut, nil
}

// Shutdown stops intake, wakes every worker, and blocks until all tasks
// accepted before the call have finished and every worker has exited.
// Queued and in-flight tasks are drained, never discarded or cancelled.
//
// A timeout of 0 waits forever; otherwise ErrShutdownTimeout is returned
// if draining takes longer. Even after a timeout the workers keep
// draining in the background.
//
// Shutdown is idempotent: calls after the first return nil immediately,
// so a deferred Shutdown alongside an explicit one is safe.
func (p *Pool) Shutdown(timeout time.Duration) error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.queue.close()
	return waitUntil(p.done, timeout)
}

// Closed reports whether Shutdown has been invoked.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// WorkerCount returns the fixed number of workers the pool was built with.
func (p *Pool) WorkerCount() int {
	return p.workerCount
}
