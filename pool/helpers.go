package pool

import (
	"errors"
	"time"
)

var (
	// ErrPoolClosed is returned by Submit once Shutdown has begun.
	// The callable is never queued and never invoked.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrShutdownTimeout is returned by Shutdown when workers did not
	// finish draining within the given timeout.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrNegativeWorkers is returned by New for a negative worker count.
	ErrNegativeWorkers = errors.New("worker count must be non-negative")
)

// defaultQueueCapacity is the initial ring capacity of the task queue.
// The queue itself is unbounded and grows on demand.
const defaultQueueCapacity = 64

// waitUntil blocks until either the done channel is closed or the timeout
// is reached. A timeout <= 0 waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
