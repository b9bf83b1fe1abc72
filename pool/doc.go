// Package pool provides a small, generic worker pool built around a
// mutex-guarded FIFO task queue and a condition-variable wake protocol.
//
// A Pool owns a fixed set of worker goroutines, started eagerly at
// construction. Producers submit heterogeneous callables concurrently;
// each submission is bound into a type-erased task paired with a one-shot
// Future through which the caller retrieves the eventual result or
// failure. Tasks are dequeued in submission order among tasks not yet
// claimed; completion order across workers is not guaranteed.
//
// # Basic Usage
//
//	p, err := pool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(0)
//
//	fut, err := pool.Submit(p, func(ctx context.Context) (int, error) {
//	    return 6 * 7, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	answer, err := fut.Get() // 42
//
// # Futures
//
// Every Submit returns a *Future[R]. Get blocks until the task completes
// and returns its value or the failure captured from the task body.
// GetWithContext and GetWithTimeout bound the wait; TryGet and IsReady
// poll without blocking; Done exposes a channel for use in select.
// A failing task only surfaces through its own future: it never crashes a
// worker and never affects other tasks.
//
// # Shutdown
//
// Shutdown stops intake, wakes every worker, and blocks until all
// previously accepted tasks have finished and every worker has exited.
// It never cancels queued or in-flight work. Repeated calls are no-ops,
// so deferring Shutdown alongside an explicit call is safe. Submissions
// issued after shutdown began fail with ErrPoolClosed.
//
// # Retry, Rate Limiting and Hooks
//
// Functional options configure per-pool behavior:
//
//	p, _ := pool.New(8,
//	    pool.WithRetryPolicy(3, 100*time.Millisecond),
//	    pool.WithBackoff(pool.BackoffJittered),
//	    pool.WithRateLimit(50, 10),
//	    pool.WithTaskEndHook(func(id int64, err error) { ... }),
//	)
//
// Panic recovery is built in: a panicking task is converted to an error
// carrying the stack trace and delivered through its future.
//
// # Zero Workers
//
// New(0) is legal: the pool accepts and queues submissions, but no worker
// exists to execute them, so their futures never fulfill. This is a
// documented trap for callers wiring worker counts from configuration,
// not an error.
//
// The package is designed to be small and idiomatic for Go 1.18+ (generics).
package pool
