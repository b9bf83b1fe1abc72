package backoff

import "time"

// Kind selects the retry backoff algorithm.
type Kind int

const (
	// Exponential uses plain exponential backoff (default).
	Exponential Kind = iota
	// Jittered adds random jitter to prevent thundering herd.
	Jittered
	// Decorrelated uses AWS-style decorrelated jitter.
	Decorrelated
)

// New creates a backoff strategy for the given kind. jitterFactor is only
// used by the Jittered kind.
func New(kind Kind, initialDelay, maxDelay time.Duration, jitterFactor float64) Strategy {
	switch kind {
	case Jittered:
		return newJittered(initialDelay, maxDelay, jitterFactor)

	case Decorrelated:
		return newDecorrelated(initialDelay, maxDelay)

	default:
		return newExponential(initialDelay, maxDelay)
	}
}
