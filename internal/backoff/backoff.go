// Package backoff implements the retry delay strategies used by the pool
// package. Implementations are internal; the pool re-exports the Kind
// constants for callers.
package backoff

import (
	"math/rand"
	"sync"
	"time"
)

const (
	maxShift = 63 // prevent overflow in exponential calculation
)

// Strategy defines how retry delays are calculated.
type Strategy interface {
	// NextDelay returns the delay before the next retry attempt.
	// attemptNumber is 0-indexed (0 = first retry after the initial
	// failure). lastError lets adaptive strategies inspect the failure.
	NextDelay(attemptNumber int, lastError error) time.Duration

	// Reset clears any internal state (stateful strategies only).
	Reset()
}

// exponential implements plain exponential backoff:
// initialDelay * 2^attemptNumber, capped at maxDelay.
type exponential struct {
	initialDelay time.Duration
	maxDelay     time.Duration
}

func newExponential(initialDelay, maxDelay time.Duration) *exponential {
	return &exponential{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}
}

func (e *exponential) NextDelay(attemptNumber int, _ error) time.Duration {
	return calcExponentialDelay(attemptNumber, e.initialDelay, e.maxDelay)
}

func (e *exponential) Reset() {
	// stateless
}

// jittered adds randomization to exponential backoff to avoid synchronized
// retries: delay = exponentialDelay * (1 ± jitterFactor).
type jittered struct {
	initialDelay, maxDelay time.Duration
	jitterFactor           float64 // 0.0 to 1.0
	rng                    *rand.Rand
	mu                     sync.Mutex // rng is not safe for concurrent use
}

func newJittered(initialDelay, maxDelay time.Duration, jitterFactor float64) *jittered {
	return &jittered{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (j *jittered) NextDelay(attemptNumber int, _ error) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	baseDelay := calcExponentialDelay(attemptNumber, j.initialDelay, j.maxDelay)

	j.mu.Lock()
	multiplier := 1.0 + (j.rng.Float64()*2-1)*j.jitterFactor
	j.mu.Unlock()

	return clamp(time.Duration(float64(baseDelay)*multiplier), 0, j.maxDelay)
}

func (j *jittered) Reset() {
	// stateless
}

// decorrelated implements AWS-style decorrelated jitter:
// delay = min(maxDelay, random(initialDelay, prevDelay * 3)).
// Each delay depends on the previous one rather than the attempt number,
// which spreads concurrent retries apart.
//
// Reference: AWS Architecture Blog, "Exponential Backoff And Jitter"
// (Marc Brooker, 2015).
type decorrelated struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	prevDelay    time.Duration
	rng          *rand.Rand
	mu           sync.Mutex
}

func newDecorrelated(initialDelay, maxDelay time.Duration) *decorrelated {
	return &decorrelated{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		prevDelay:    initialDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (d *decorrelated) NextDelay(attemptNumber int, _ error) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if attemptNumber == 0 {
		d.prevDelay = d.initialDelay
		return d.initialDelay
	}

	upperBound := min(time.Duration(float64(d.prevDelay)*3), d.maxDelay)

	delayRange := upperBound - d.initialDelay
	if delayRange <= 0 {
		d.prevDelay = d.initialDelay
		return d.initialDelay
	}

	delay := d.initialDelay + time.Duration(d.rng.Int63n(int64(delayRange)))
	d.prevDelay = delay
	return delay
}

func (d *decorrelated) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prevDelay = d.initialDelay
}

func calcExponentialDelay(attemptNumber int, initialDelay, maxDelay time.Duration) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	if attemptNumber >= maxShift {
		return maxDelay
	}

	delay := time.Duration(int64(1)<<uint(attemptNumber)) * initialDelay
	if delay > maxDelay || delay < 0 {
		return maxDelay
	}

	return delay
}

func clamp[T int | float64 | time.Duration](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
