// File: loop/config.go
// Author: momentics <momentics@gmail.com>

package loop

import "time"

// Config holds the tunables of an EventLoop. Use DefaultConfig and
// override fields, matching the teacher's functional-options-free
// plain-struct configuration style elsewhere in the pack.
type Config struct {
	// MaxPollSlice bounds how long a Poll call may block when no timer
	// is pending, and caps the timeout computed from the earliest
	// pending timer's expiry.
	MaxPollSlice time.Duration

	// TaskQueueCapacity sizes the cross-thread task queue. Rounded up
	// to a power of two.
	TaskQueueCapacity int

	// OnQuitQueueCapacity is normalized by withDefaults but not read by
	// EventLoop; the on-quit callback queue is an unbounded slice.
	OnQuitQueueCapacity int

	// MaxConsecutiveIOFailures is how many consecutive transient
	// wake-up/timer I/O errors are tolerated before the loop escalates
	// to a programmer-contract-violation panic.
	MaxConsecutiveIOFailures int

	// TimingWheelTickInterval, when positive, gives the loop an
	// optional timingwheel.Wheel (spec.md's C3, owned by C4) advanced
	// by an internal repeating timer at this interval. Zero (the
	// default) leaves the loop without a wheel; Wheel() then returns
	// nil.
	TimingWheelTickInterval time.Duration

	// TimingWheelBuckets and TimingWheelLevels size the wheel when
	// TimingWheelTickInterval is positive; both default to 0, which is
	// interpreted as timingwheel.NewWheel's own "at least 1" floor.
	TimingWheelBuckets int
	TimingWheelLevels  int
}

// DefaultConfig returns the tunables used when a zero Config is passed
// to NewEventLoop.
func DefaultConfig() Config {
	return Config{
		MaxPollSlice:             10 * time.Millisecond,
		TaskQueueCapacity:        1024,
		OnQuitQueueCapacity:      16,
		MaxConsecutiveIOFailures: 16,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxPollSlice <= 0 {
		c.MaxPollSlice = d.MaxPollSlice
	}
	if c.TaskQueueCapacity <= 0 {
		c.TaskQueueCapacity = d.TaskQueueCapacity
	}
	if c.OnQuitQueueCapacity <= 0 {
		c.OnQuitQueueCapacity = d.OnQuitQueueCapacity
	}
	if c.MaxConsecutiveIOFailures <= 0 {
		c.MaxConsecutiveIOFailures = d.MaxConsecutiveIOFailures
	}
	return c
}
