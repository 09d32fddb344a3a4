// File: timer/store.go
// Author: momentics <momentics@gmail.com>
//
// TimerStore: a min-heap of pending timers plus a lazily-swept set of
// cancelled ids. The heap is an array-backed binary heap with its own
// swim/sink, in the idiom of nyan233-ddio/container/little_heap.go,
// rather than the standard library's container/heap.Interface — see
// DESIGN.md for why this module follows the pack's own hand-rolled
// array heap instead of the generic stdlib one.

package timer

import (
	"time"
)

// Store is a min-heap keyed by expiry, tie-broken by ascending id, plus
// a cancelled-id set. Not safe for concurrent use; callers confine it to
// a single loop thread (loop.EventLoop does so).
type Store struct {
	heap      []*Timer // 1-indexed; heap[0] unused
	n         int
	cancelled map[ID]struct{}
}

// NewStore creates an empty TimerStore.
func NewStore() *Store {
	return &Store{
		heap:      make([]*Timer, 1, 64),
		cancelled: make(map[ID]struct{}),
	}
}

// less reports whether the timer at index i must fire no later than the
// timer at index j: earlier expiry first, ties broken by the earlier
// (smaller) id for deterministic ordering of simultaneous timers.
func (s *Store) less(i, j int) bool {
	a, b := s.heap[i], s.heap[j]
	if a.Expiry.Equal(b.Expiry) {
		return a.ID < b.ID
	}
	return a.Expiry.Before(b.Expiry)
}

func (s *Store) swap(i, j int) {
	s.heap[i], s.heap[j] = s.heap[j], s.heap[i]
}

func (s *Store) swim(k int) {
	for k > 1 && s.less(k, k/2) {
		s.swap(k, k/2)
		k /= 2
	}
}

func (s *Store) sink(k int) {
	for 2*k <= s.n {
		j := 2 * k
		if j < s.n && s.less(j+1, j) {
			j++
		}
		if !s.less(j, k) {
			break
		}
		s.swap(k, j)
		k = j
	}
}

func (s *Store) push(t *Timer) {
	s.n++
	if len(s.heap) <= s.n {
		s.heap = append(s.heap, t)
	} else {
		s.heap[s.n] = t
	}
	s.swim(s.n)
}

func (s *Store) pop() *Timer {
	top := s.heap[1]
	s.swap(1, s.n)
	s.heap[s.n] = nil
	s.n--
	if s.n > 0 {
		s.sink(1)
	}
	return top
}

// AddTimer schedules cb to run at expiry, repeating every interval
// (interval == 0 means one-shot), and returns its id. Timer ids are a
// process-wide monotonic counter; 0 is reserved and never returned.
func (s *Store) AddTimer(cb Callback, expiry time.Time, interval time.Duration) ID {
	id := NextID()
	s.push(&Timer{ID: id, Expiry: expiry, Interval: interval, Callback: cb})
	return id
}

// AddTimerWithID schedules cb under a previously allocated id (see
// NextID). Used by loop.EventLoop to hand callers an id synchronously
// from RunAt/RunAfter/RunEvery while the actual heap insertion happens
// asynchronously on the loop thread.
func (s *Store) AddTimerWithID(id ID, cb Callback, expiry time.Time, interval time.Duration) {
	s.push(&Timer{ID: id, Expiry: expiry, Interval: interval, Callback: cb})
}

// InvalidateTimer cancels id. Idempotent. A cancellation delivered before
// the timer leaves the heap prevents it from ever firing; one delivered
// after the callback has begun has no effect on the in-flight call but
// prevents a repeating timer from re-arming.
func (s *Store) InvalidateTimer(id ID) {
	if id == InvalidID {
		return
	}
	s.cancelled[id] = struct{}{}
}

// EarliestExpiry returns the expiry of the earliest non-cancelled timer,
// sweeping cancelled entries off the root lazily as it goes.
func (s *Store) EarliestExpiry() (time.Time, bool) {
	for s.n > 0 {
		top := s.heap[1]
		if _, dead := s.cancelled[top.ID]; dead {
			delete(s.cancelled, top.ID)
			s.pop()
			continue
		}
		return top.Expiry, true
	}
	return time.Time{}, false
}

// ExpireDue pops and returns every timer whose expiry is <= now, in
// ascending (expiry, id) order, discarding cancelled entries silently.
// ExpireDue does not re-insert repeating timers: callers run the
// returned timers' Callback themselves, then call Reinsert for any that
// repeat, which re-arms them to now+interval (never now itself) — see
// EventLoop's loop body.
func (s *Store) ExpireDue(now time.Time) []*Timer {
	var due []*Timer
	for s.n > 0 {
		top := s.heap[1]
		if top.Expiry.After(now) {
			break
		}
		s.pop()
		if _, dead := s.cancelled[top.ID]; dead {
			delete(s.cancelled, top.ID)
			continue
		}
		due = append(due, top)
	}
	return due
}

// Reinsert re-arms a repeating timer and pushes it back onto the heap.
// It is a no-op for one-shot timers or for ids that were cancelled while
// their callback was running.
func (s *Store) Reinsert(t *Timer, now time.Time) {
	if !t.Repeats() {
		return
	}
	if _, dead := s.cancelled[t.ID]; dead {
		delete(s.cancelled, t.ID)
		return
	}
	t.Restart(now)
	s.push(t)
}

// Len returns the number of timers currently pending (including any not
// yet swept cancelled entries).
func (s *Store) Len() int { return s.n }
