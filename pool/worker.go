package pool

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// worker is the long-lived execution loop: wait, dequeue, execute,
// repeat. It exits when popWait reports end of work (stop flag set and
// queue drained). Task failures are captured into futures and never
// terminate a worker.
func (p *Pool) worker(ctx context.Context, workerID int64) error {
	debugLog("worker %d: started", workerID)

	for {
		t, ok := p.queue.popWait()
		if !ok {
			debugLog("worker %d: end of work", workerID)
			return nil
		}

		t.run(ctx)
	}
}

// runTask executes one submitted callable with rate limiting, hooks,
// panic recovery and the configured retry policy. The returned error is
// the captured task failure destined for the future; the worker loop
// never sees it.
func runTask[R any](ctx context.Context, p *Pool, id int64, fn TaskFunc[R]) (R, error) {
	cfg := p.conf

	if cfg.rateLimiter != nil {
		if err := cfg.rateLimiter.Wait(ctx); err != nil {
			var zero R
			// Rate limiter's error doesn't wrap context errors, so check context explicitly
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, err
		}
	}

	if cfg.onTaskStart != nil {
		cfg.onTaskStart(id)
	}

	value, err := runWithRecovery(ctx, p, id, fn)

	if cfg.onTaskEnd != nil {
		cfg.onTaskEnd(id, err)
	}

	return value, err
}

// runWithRecovery converts a panic in the task body to an error carrying
// the stack trace, so one panicking task cannot crash its worker.
func runWithRecovery[R any](ctx context.Context, p *Pool, id int64, fn TaskFunc[R]) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("task panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return runWithRetry(ctx, p, id, fn)
}

// runWithRetry runs fn up to maxAttempts times, waiting out the backoff
// strategy between attempts and respecting context cancellation. The
// OnEachAttempt hook fires after every failure that will be retried.
func runWithRetry[R any](ctx context.Context, p *Pool, id int64, fn TaskFunc[R]) (R, error) {
	var value R
	var err error
	maxAttempts := max(p.conf.maxAttempts, 1)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return value, ctx.Err()
		default:
		}

		if attempt > 0 && p.retry != nil {
			delay := p.retry.NextDelay(attempt-1, err)
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return value, ctx.Err()
				}
			}
		}

		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}

		if p.conf.onEachAttempt != nil && attempt < maxAttempts-1 {
			p.conf.onEachAttempt(id, attempt+1, err)
		}
	}

	return value, err
}
