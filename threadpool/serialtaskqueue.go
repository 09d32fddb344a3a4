// File: threadpool/serialtaskqueue.go
// Author: momentics <momentics@gmail.com>

package threadpool

import "github.com/momentics/reactorcore/loop"

// SerialTaskQueue is a task queue backed by a single EventLoopThread.
// Run is exactly loop.RunInLoop: inline if called from the thread
// itself, queued otherwise.
type SerialTaskQueue struct {
	thread *EventLoopThread
}

// NewSerialTaskQueue constructs and starts the backing thread. Pass
// WithAffinity(cpuID) to pin it.
func NewSerialTaskQueue(cfg loop.Config, opts ...Option) (*SerialTaskQueue, error) {
	t, err := NewEventLoopThread(cfg, opts...)
	if err != nil {
		return nil, err
	}
	t.Run()
	return &SerialTaskQueue{thread: t}, nil
}

// Run submits f to the queue's loop.
func (q *SerialTaskQueue) Run(f func()) {
	q.thread.Loop().RunInLoop(f)
}

// Stop quits and joins the backing thread.
func (q *SerialTaskQueue) Stop() { q.thread.Stop() }
