// File: threadpool/concurrenttaskqueue.go
// Author: momentics <momentics@gmail.com>
//
// ConcurrentTaskQueue is the classic worker pool spec.md calls for: a
// fixed thread count, a mutex-protected FIFO, a condition variable for
// hand-off, and an idempotent stop that joins every worker. Unlike
// core/concurrency/executor.go's per-worker lock-free queues plus
// global-queue fallback, this is deliberately the simpler single-FIFO
// design spec.md names — grounded on executor.go for the
// panic-recovering task execution and WaitGroup join idiom, with the
// FIFO itself backed by github.com/eapache/queue.Queue, a dependency
// the teacher's own go.mod already declares but never imports.

package threadpool

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/reactorcore/api"
)

// Task is a unit of work submitted to a ConcurrentTaskQueue.
type Task func()

// ErrQueueStopped is returned by Submit once Stop has been called.
var ErrQueueStopped = errors.New("threadpool: queue stopped")

// ConcurrentTaskQueue runs submitted tasks across a fixed number of
// worker goroutines pulling from one shared FIFO.
type ConcurrentTaskQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   *queue.Queue
	stopped bool
	wg      sync.WaitGroup
	workers int

	stopOnce sync.Once
}

// NewConcurrentTaskQueue starts workers goroutines draining a shared
// FIFO.
func NewConcurrentTaskQueue(workers int) *ConcurrentTaskQueue {
	if workers <= 0 {
		workers = 1
	}
	q := &ConcurrentTaskQueue{tasks: queue.New(), workers: workers}
	q.cond = sync.NewCond(&q.mu)
	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

func (q *ConcurrentTaskQueue) worker() {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		for q.tasks.Length() == 0 && !q.stopped {
			q.cond.Wait()
		}
		if q.tasks.Length() == 0 && q.stopped {
			q.mu.Unlock()
			return
		}
		task := q.tasks.Remove().(func())
		q.mu.Unlock()
		q.safeExecute(task)
	}
}

func (q *ConcurrentTaskQueue) safeExecute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorFromString(fmt.Sprintf("threadpool: task panicked: %v", r))
		}
	}()
	task()
}

// Submit appends task to the FIFO and wakes one worker. Returns
// ErrQueueStopped, never silently dropping the task's submission,
// once the queue has been stopped (spec.md section 7 category 4:
// resource exhaustion/rejection must surface to the caller).
func (q *ConcurrentTaskQueue) Submit(task func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return ErrQueueStopped
	}
	q.tasks.Add(task)
	q.cond.Signal()
	return nil
}

// NumWorkers reports the fixed worker-goroutine count this queue was
// constructed with.
func (q *ConcurrentTaskQueue) NumWorkers() int { return q.workers }

// Stop idempotently drains in-flight work, signals every worker to
// exit once the FIFO is empty, and joins them.
func (q *ConcurrentTaskQueue) Stop() {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.stopped = true
		q.mu.Unlock()
		q.cond.Broadcast()
	})
	q.wg.Wait()
}

// StopWithTimeout behaves like Stop but gives up waiting for workers to
// drain after d elapses, reporting whether every worker had joined by
// then. The stop signal is still sent either way — a timed-out caller
// must not assume workers keep running, only that join was not
// observed within d.
func (q *ConcurrentTaskQueue) StopWithTimeout(d time.Duration) bool {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.stopped = true
		q.mu.Unlock()
		q.cond.Broadcast()
	})
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

var _ api.Executor = (*ConcurrentTaskQueue)(nil)
