// File: api/channel.go
// Author: momentics <momentics@gmail.com>
//
// Channel is the (descriptor, interest-mask, callbacks) tuple a poller
// multiplexes over. A Channel belongs to exactly one loop; mutating its
// interest mask must happen on that loop's thread.

package api

// InterestMask is a bitmask of the conditions a Channel wants reported.
type InterestMask uint8

const (
	InterestNone  InterestMask = 0
	InterestRead  InterestMask = 1 << 0
	InterestWrite InterestMask = 1 << 1
)

// Has reports whether m requests the given interest.
func (m InterestMask) Has(i InterestMask) bool { return m&i != 0 }

// EventType is a bitmask of the readiness conditions a Poller actually
// found on a descriptor during one Poll pass. Unlike InterestMask,
// which is what a Channel asks to be notified about, EventType is what
// the backend observed: EventError and EventClose are never requested
// but are reported when the backend detects them. The level-triggered
// epoll backend reports them on every Poll pass while the condition
// persists, so a handler may see the same error or hang-up repeatedly.
type EventType uint8

const (
	EventRead EventType = 1 << iota
	EventWrite
	EventError
	EventClose
)

// Has reports whether e includes the given event.
func (e EventType) Has(o EventType) bool { return e&o != 0 }

// Channel is the descriptor-facing half of the (descriptor, callbacks) pair
// a Poller tracks. EventLoop owns the concrete implementation; the poller
// only ever sees this interface, which keeps reactor free of a dependency
// on loop.
type Channel interface {
	// FD returns the underlying descriptor (or handle on Windows).
	FD() uintptr

	// Interest returns the current interest mask.
	Interest() InterestMask

	// HandleRead, HandleWrite, HandleError, HandleClose invoke the
	// channel's matching user callback, if set. They are only ever called
	// on the owning loop's thread.
	HandleRead()
	HandleWrite()
	HandleError()
	HandleClose()
}
