// File: loop/waker.go
// Author: momentics <momentics@gmail.com>
//
// waker is the loop's wake-up protocol (spec.md section 4.4): a way for
// another goroutine to interrupt a blocked Poll call. newWaker picks
// the backend per platform — eventfd on linux, a self-pipe everywhere
// else, or (windows) the poller's own PostQueuedCompletionStatus
// primitive, which needs no registered channel at all.

package loop

type waker interface {
	signal() error
	close() error
}

// newWaker constructs the platform wake-up backend. If the returned
// api.Channel is non-nil, the caller must register it with the poller;
// a nil channel means the backend wakes the poller directly (IOCP).
type pollerPoster interface {
	PostEvent(n uint64) error
}
