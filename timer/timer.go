// File: timer/timer.go
// Author: momentics <momentics@gmail.com>
//
// Timer value type. spec.md section 3 "Timer" and section 4.2.

package timer

import (
	"sync/atomic"
	"time"
)

// ID identifies a scheduled timer. The zero value is reserved as
// "invalid" and is never returned by NextID or Store.AddTimer.
type ID uint64

// InvalidID is the reserved "no timer" identifier.
const InvalidID ID = 0

var idCounter atomic.Uint64

// NextID allocates the next process-wide monotonic timer id. Exposed so
// callers that must return an id before a scheduling request has
// actually reached the owning Store's thread (loop.EventLoop's
// RunAt/RunAfter/RunEvery) can hand one out eagerly.
func NextID() ID { return ID(idCounter.Add(1)) }

// Callback is invoked when a Timer expires.
type Callback func()

// Timer is a monotonic-clock expiry point with an optional repeat
// interval (zero means one-shot) and a stable identifier.
type Timer struct {
	ID       ID
	Expiry   time.Time
	Interval time.Duration // zero means one-shot
	Callback Callback

	cancelled bool
}

// Repeats reports whether the timer re-arms after firing.
func (t *Timer) Repeats() bool { return t.Interval > 0 }

// Restart re-arms a repeating timer strictly after it has fired: the new
// expiry is now+interval, never now itself, so consecutive invocations
// always satisfy t_{k+1} >= t_k + interval.
func (t *Timer) Restart(now time.Time) {
	if t.Repeats() {
		t.Expiry = now.Add(t.Interval)
	}
}
