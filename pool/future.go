package pool

import (
	"context"
	"time"
)

// Future is the reader end of the one-shot result channel created for
// every submission. The executing worker fulfills it exactly once with
// the task's value or captured failure; all readers observe the same
// outcome. Fulfilling a future twice is a programming error and panics.
//
// Type parameters:
//   - R: The result type produced by the submitted callable
type Future[R any] struct {
	id    int64
	done  chan struct{}
	value R
	err   error
}

func newFuture[R any](id int64) *Future[R] {
	return &Future[R]{
		id:   id,
		done: make(chan struct{}),
	}
}

// complete publishes the outcome. Closing done publishes the value and
// error writes to every reader that observes the close. Single writer,
// called at most once per future.
func (f *Future[R]) complete(value R, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Get blocks until the task completes, then returns its value or the
// failure captured from the task body. Safe for concurrent callers.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext is Get bounded by ctx. If ctx ends first, the zero value
// and the context error are returned; the task itself keeps running and
// the future can still be read later.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is Get bounded by a duration.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet polls for the result without blocking. ready reports whether the
// task has completed; value and err are only meaningful when ready.
func (f *Future[R]) TryGet() (value R, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero R
		return zero, nil, false
	}
}

// IsReady reports whether the result is available without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the result is ready, for use
// in select statements alongside other channels.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// TaskID returns the pool-assigned id of the submission backing this
// future. IDs increase monotonically in submission order.
func (f *Future[R]) TaskID() int64 {
	return f.id
}
