// File: loop/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package loop implements the EventLoop (C4): the component that owns a
// reactor.Poller, a timer.Store, an optional timingwheel.Wheel, a
// cross-thread task queue, and the wake-up primitive that lets other
// goroutines interrupt a blocked Poll call. One EventLoop is meant to
// be driven by exactly one goroutine for its entire lifetime, in the
// same spirit as trantor's EventLoop being pinned to one OS thread; Go
// has no portable API to pin a goroutine to a thread's identity, so
// EventLoop instead assumes good-faith cooperation from callers: only
// ever call Loop() once, from the goroutine that will drive it for as
// long as it runs.
package loop
