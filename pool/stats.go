package pool

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	// Workers is the fixed worker count the pool was built with.
	Workers int
	// Queued is the number of accepted tasks not yet claimed by a worker.
	Queued int
	// Submitted counts successful Submit calls over the pool's lifetime.
	Submitted int64
	// Completed counts tasks whose futures have been fulfilled.
	Completed int64
	// Failed counts completed tasks that ended with an error.
	Failed int64
}

// Stats returns a snapshot of the pool's counters. The counters advance
// concurrently, so fields are individually accurate but not guaranteed to
// be mutually consistent.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workerCount,
		Queued:    p.queue.len(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}
