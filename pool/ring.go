// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
//
// Ring is the generic counterpart of loop/taskqueue.go's private,
// func()-specialized MPMC ring: the same Vyukov sequence-numbered
// design, ported here as a reusable api.Ring[T] so pooling code (and
// any future consumer) gets a lock-free bounded queue without having
// to hand-roll one, matching the teacher's split between
// core/concurrency/lock_free_queue.go (the specialized executor queue)
// and pool/buffer_ring.go (the generic api.Ring[T] wrapper other
// packages build on).

package pool

import (
	"sync/atomic"

	"github.com/momentics/reactorcore/api"
)

// Ring is a bounded, lock-free multi-producer multi-consumer queue.
// It implements api.Ring[T].
type Ring[T any] struct {
	head  uint64
	_     [cacheLinePad]byte
	tail  uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []ringCell[T]
}

const cacheLinePad = 64

type ringCell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// NewRing constructs a Ring whose capacity is rounded up to the next
// power of two, at least 2.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	r := &Ring[T]{
		mask:  uint64(size - 1),
		cells: make([]ringCell[T], size),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// Enqueue adds item to the ring; reports false if the ring is full.
func (r *Ring[T]) Enqueue(item T) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		c := &r.cells[tail&r.mask]
		seq := c.sequence.Load()
		switch dif := int64(seq) - int64(tail); {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.data = item
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false
		}
	}
}

// Dequeue removes and returns the oldest item; ok is false if empty.
func (r *Ring[T]) Dequeue() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		c := &r.cells[head&r.mask]
		seq := c.sequence.Load()
		switch dif := int64(seq) - int64(head+1); {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + r.mask + 1)
				return item, true
			}
		case dif < 0:
			return item, false
		}
	}
}

// Len reports an instantaneous, possibly-stale count of queued items.
func (r *Ring[T]) Len() int {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap reports the ring's fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.cells) }

var _ api.Ring[any] = (*Ring[any])(nil)
