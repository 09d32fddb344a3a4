// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch, implemented by
// threadpool.ConcurrentTaskQueue.

package api

// Executor abstracts a pool that runs submitted tasks.
type Executor interface {
	// Submit schedules task for execution. Returns an error if the executor
	// has been stopped.
	Submit(task func()) error

	// NumWorkers returns the current number of active worker goroutines.
	NumWorkers() int
}
