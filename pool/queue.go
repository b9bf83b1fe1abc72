package pool

import "sync"

// taskQueue is the FIFO queue shared by all producers and workers. A
// single mutex guards both the pending tasks and the stopped flag, and
// the condition variable on that same lock implements the wake protocol:
// exactly one waiter is signalled per push, every waiter on close.
//
// The backing store is a growable power-of-two ring, so push is O(1)
// amortized and never blocks producers on worker availability.
type taskQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ring    []task
	head    int
	count   int
	stopped bool
}

func newTaskQueue(capacity int) *taskQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}

	q := &taskQueue{
		ring: make([]task, nextPowerOfTwo(capacity)),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends t to the tail and wakes one idle worker. The stopped check
// and the append happen under the same lock, so no task can slip into the
// queue after a shutdown has observed it empty.
func (q *taskQueue) push(t task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return ErrPoolClosed
	}

	if q.count == len(q.ring) {
		q.grow()
	}

	q.ring[(q.head+q.count)&(len(q.ring)-1)] = t
	q.count++
	q.cond.Signal()
	return nil
}

// popWait blocks the calling worker until a task is available or the
// queue is stopped and drained. The predicate is re-evaluated after every
// wake, so a spurious wake-up simply loops back into Wait. ok == false
// signals end of work: the caller should exit its loop.
func (q *taskQueue) popWait() (t task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.stopped {
		q.cond.Wait()
	}

	if q.count == 0 {
		return task{}, false
	}

	t = q.ring[q.head]
	q.ring[q.head] = task{}
	q.head = (q.head + 1) & (len(q.ring) - 1)
	q.count--
	return t, true
}

// close marks the queue stopped and wakes every waiter so each worker can
// independently re-evaluate the exit condition. The stopped flag is
// monotonic. Pending tasks stay queued: workers drain them before exiting.
func (q *taskQueue) close() {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// len returns the number of tasks currently queued.
func (q *taskQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// grow doubles the ring, unwrapping the current contents to index 0.
// Caller must hold the lock.
func (q *taskQueue) grow() {
	bigger := make([]task, len(q.ring)*2)
	n := copy(bigger, q.ring[q.head:])
	copy(bigger[n:], q.ring[:q.head])
	q.ring = bigger
	q.head = 0
}
