package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func noopTask(id int64) task {
	return task{id: id, run: func(context.Context) {}}
}

func TestTaskQueue_FIFOOrder(t *testing.T) {
	q := newTaskQueue(4)

	for i := 0; i < 10; i++ {
		if err := q.push(noopTask(int64(i))); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
	}

	for i := 0; i < 10; i++ {
		got, ok := q.popWait()
		if !ok {
			t.Fatalf("pop %d: unexpected end of work", i)
		}
		if got.id != int64(i) {
			t.Errorf("pop %d: expected id %d, got %d", i, i, got.id)
		}
	}

	if q.len() != 0 {
		t.Errorf("expected empty queue, got len %d", q.len())
	}
}

func TestTaskQueue_GrowsPastInitialCapacity(t *testing.T) {
	q := newTaskQueue(2)

	// Interleave a few pops so the ring head is not at zero when it grows.
	for i := 0; i < 3; i++ {
		_ = q.push(noopTask(int64(i)))
	}
	first, _ := q.popWait()
	if first.id != 0 {
		t.Fatalf("expected id 0 first, got %d", first.id)
	}

	for i := 3; i < 100; i++ {
		if err := q.push(noopTask(int64(i))); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
	}

	for i := 1; i < 100; i++ {
		got, ok := q.popWait()
		if !ok || got.id != int64(i) {
			t.Fatalf("expected id %d, got %d (ok=%v)", i, got.id, ok)
		}
	}
}

func TestTaskQueue_PopWaitBlocksUntilPush(t *testing.T) {
	q := newTaskQueue(0)

	popped := make(chan int64, 1)
	go func() {
		got, ok := q.popWait()
		if ok {
			popped <- got.id
		}
	}()

	select {
	case <-popped:
		t.Fatal("popWait returned before any push")
	case <-time.After(50 * time.Millisecond):
		// expected: still waiting
	}

	if err := q.push(noopTask(7)); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	select {
	case id := <-popped:
		if id != 7 {
			t.Errorf("expected id 7, got %d", id)
		}
	case <-time.After(time.Second):
		t.Fatal("popWait did not wake after push")
	}
}

func TestTaskQueue_CloseWakesAllWaiters(t *testing.T) {
	q := newTaskQueue(0)

	const waiters = 8
	var exited atomic.Int32
	var wg sync.WaitGroup

	for n := 0; n < waiters; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := q.popWait(); !ok {
				exited.Add(1)
			}
		}()
	}

	// Give the waiters time to block on the condition variable.
	time.Sleep(50 * time.Millisecond)
	q.close()
	wg.Wait()

	if exited.Load() != waiters {
		t.Errorf("expected %d waiters to observe end of work, got %d", waiters, exited.Load())
	}
}

func TestTaskQueue_PushAfterCloseFails(t *testing.T) {
	q := newTaskQueue(0)
	q.close()

	if err := q.push(noopTask(1)); err != ErrPoolClosed {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
	if q.len() != 0 {
		t.Errorf("rejected push must not enqueue, got len %d", q.len())
	}
}

func TestTaskQueue_DrainsPendingAfterClose(t *testing.T) {
	q := newTaskQueue(0)

	for i := 0; i < 5; i++ {
		_ = q.push(noopTask(int64(i)))
	}
	q.close()

	// Pending tasks are still handed out in order after close.
	for i := 0; i < 5; i++ {
		got, ok := q.popWait()
		if !ok || got.id != int64(i) {
			t.Fatalf("expected id %d, got %d (ok=%v)", i, got.id, ok)
		}
	}

	// Only once drained does popWait report end of work.
	if _, ok := q.popWait(); ok {
		t.Error("expected end of work after draining a closed queue")
	}
}
