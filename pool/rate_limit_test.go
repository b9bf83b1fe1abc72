package pool_test

import (
	"context"
	"testing"
	"time"

	"github.com/taskline-go/taskline/pool"
)

func TestPool_RateLimit_ThrottlesThroughput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rate limit timing test in short mode")
	}

	// 20 tasks/sec with burst 1: 10 tasks should take roughly 450ms+.
	p, err := pool.New(4, pool.WithRateLimit(20, 1))
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	defer p.Shutdown(5 * time.Second)

	numTasks := 10
	futures := make([]*pool.Future[struct{}], numTasks)

	start := time.Now()
	for i := 0; i < numTasks; i++ {
		futures[i], err = pool.Submit(p, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
	}

	for i, f := range futures {
		if _, err := f.Get(); err != nil {
			t.Fatalf("task %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// 9 tasks beyond the burst at 50ms apart; allow generous slack for CI.
	if elapsed < 300*time.Millisecond {
		t.Errorf("expected rate limiting to stretch execution, finished in %v", elapsed)
	}
}

func TestPool_RateLimit_SubmitDoesNotBlock(t *testing.T) {
	// The limiter gates execution on the worker side; Submit returns
	// immediately no matter how slow the configured rate is.
	p, err := pool.New(1, pool.WithRateLimit(1, 1))
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	defer p.Shutdown(10 * time.Second)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := pool.Submit(p, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatalf("failed to submit task %d: %v", i, err)
		}
	}

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Submit blocked for %v, expected immediate return", elapsed)
	}
}
