package pool

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/taskline-go/taskline/internal/backoff"
)

// Option is a functional option for configuring the pool.
type Option func(*config)

// Backoff kinds accepted by WithBackoff, re-exported so callers do not
// have to import the internal backoff package.
const (
	BackoffExponential  = backoff.Exponential
	BackoffJittered     = backoff.Jittered
	BackoffDecorrelated = backoff.Decorrelated
)

type config struct {
	taskBuffer   int
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	jitterFactor float64
	backoffKind  backoff.Kind
	rateLimiter  *rate.Limiter

	onTaskStart   func(id int64)
	onTaskEnd     func(id int64, err error)
	onEachAttempt func(id int64, attempt int, err error)
}

func defaultConfig() *config {
	return &config{
		taskBuffer:   defaultQueueCapacity,
		maxAttempts:  1,
		initialDelay: 100 * time.Millisecond,
		maxDelay:     5 * time.Second,
		jitterFactor: 0.1,
		backoffKind:  backoff.Exponential,
	}
}

// WithTaskBuffer sets the initial capacity of the task queue ring.
// The queue is unbounded either way; a larger initial capacity avoids
// early growth under bursty submission. Defaults to 64.
func WithTaskBuffer(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithRetryPolicy enables retries for failing tasks. maxAttempts is the
// total number of attempts per task; initialDelay seeds the backoff
// strategy selected with WithBackoff (exponential by default).
// Without this option each task runs exactly once.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) Option {
	return func(cfg *config) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
		}

		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
		}
	}
}

// WithBackoff selects the delay strategy applied between retry attempts.
// Only meaningful together with WithRetryPolicy.
func WithBackoff(kind backoff.Kind) Option {
	return func(cfg *config) {
		cfg.backoffKind = kind
	}
}

// WithMaxBackoffDelay caps the delay between retry attempts.
// Defaults to 5s.
func WithMaxBackoffDelay(maxDelay time.Duration) Option {
	return func(cfg *config) {
		if maxDelay > 0 {
			cfg.maxDelay = maxDelay
		}
	}
}

// WithJitterFactor sets the randomization factor for the Jittered backoff
// kind, between 0.0 and 1.0. Defaults to 0.1 (±10%).
func WithJitterFactor(factor float64) Option {
	return func(cfg *config) {
		if factor > 0 {
			cfg.jitterFactor = factor
		}
	}
}

// WithRateLimit limits task throughput across all workers using a token
// bucket. tasksPerSecond is the sustained rate, burst the bucket size.
// Useful when tasks call external services or APIs.
//
// Example:
//
//	WithRateLimit(10, 5) // allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithTaskStartHook registers a hook called by the worker just before a
// task body runs. The id is the one reported by Future.TaskID.
func WithTaskStartHook(hook func(id int64)) Option {
	return func(cfg *config) {
		cfg.onTaskStart = hook
	}
}

// WithTaskEndHook registers a hook called after a task body returns, with
// the final error (nil on success, after any retries).
func WithTaskEndHook(hook func(id int64, err error)) Option {
	return func(cfg *config) {
		cfg.onTaskEnd = hook
	}
}

// WithOnEachAttempt registers a hook called after every failed attempt
// that will be retried. attempt is 1-indexed.
func WithOnEachAttempt(hook func(id int64, attempt int, err error)) Option {
	return func(cfg *config) {
		cfg.onEachAttempt = hook
	}
}
