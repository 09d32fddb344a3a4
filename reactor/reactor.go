// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral poller interface. spec.md section 4.1.

package reactor

import (
	"time"

	"github.com/momentics/reactorcore/api"
)

// ReadyChannel pairs a Channel with the specific readiness bits the
// backend observed for it during one Poll pass. dispatch uses Events to
// decide which of the channel's callbacks to fire instead of assuming
// its static interest mask was fully satisfied.
type ReadyChannel struct {
	Channel api.Channel
	Events  api.EventType
}

// Poller multiplexes readiness over a bounded set of registered channels.
// All methods other than PostEvent must be called from the loop thread
// that owns the poller.
type Poller interface {
	// UpdateChannel adds c if it is new to the poller, otherwise updates
	// its interest mask.
	UpdateChannel(c api.Channel) error

	// RemoveChannel detaches c. After RemoveChannel returns, no further
	// callbacks for c will fire.
	RemoveChannel(c api.Channel) error

	// Poll blocks up to timeout (0 means return immediately once the
	// backend has been asked; a negative timeout blocks indefinitely)
	// and appends channels with pending events, and the specific events
	// observed for each, onto active. active is reset by the caller
	// before each call and is not retained past it.
	Poll(timeout time.Duration, active *[]ReadyChannel) error

	// PostEvent injects a wake-up on platforms whose readiness mechanism
	// supports it. Returns api.ErrNotSupported otherwise.
	PostEvent(n uint64) error

	// ResetAfterFork rebuilds kernel-side state after a fork.
	ResetAfterFork() error

	// Close releases backend resources.
	Close() error
}

// NewPoller constructs the platform-specific Poller implementation.
// Defined per-platform in reactor_linux.go / reactor_windows.go /
// reactor_stub.go.
