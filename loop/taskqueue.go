// File: loop/taskqueue.go
// Author: momentics <momentics@gmail.com>
//
// Bounded MPMC ring buffer for cross-thread task hand-off, the same
// Vyukov sequence-number design as core/concurrency/lock_free_queue.go,
// specialized to func() tasks instead of carried over as a generic type
// — EventLoop is this queue's only consumer and never needs it for
// anything else.

package loop

import "sync/atomic"

type taskCell struct {
	sequence atomic.Uint64
	task     func()
}

type taskQueue struct {
	head uint64
	_    [cacheLinePad]byte
	tail uint64
	_    [cacheLinePad]byte
	mask uint64
	cells []taskCell
}

const cacheLinePad = 64

func newTaskQueue(capacity int) *taskQueue {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	q := &taskQueue{
		mask:  uint64(size - 1),
		cells: make([]taskCell, size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// push enqueues task; reports false if the queue is full.
func (q *taskQueue) push(task func()) bool {
	for {
		tail := atomic.LoadUint64(&q.tail)
		idx := tail & q.mask
		c := &q.cells[idx]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)
		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				c.task = task
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false
		}
	}
}

// pop dequeues the oldest task; ok is false if the queue is empty.
func (q *taskQueue) pop() (task func(), ok bool) {
	for {
		head := atomic.LoadUint64(&q.head)
		idx := head & q.mask
		c := &q.cells[idx]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)
		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
				task = c.task
				c.task = nil
				c.sequence.Store(head + q.mask + 1)
				return task, true
			}
		case dif < 0:
			return nil, false
		}
	}
}
