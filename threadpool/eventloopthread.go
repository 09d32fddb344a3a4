// File: threadpool/eventloopthread.go
// Author: momentics <momentics@gmail.com>
//
// EventLoopThread owns a single dedicated goroutine: it constructs a
// loop.EventLoop, publishes the pointer to its creator through a
// one-shot channel latch, then blocks until Run is called before
// entering the loop body — mirroring spec.md's construct/publish/wait/
// run sequencing for a C++ thread-per-loop model in goroutine terms.

package threadpool

import (
	"runtime"
	"sync"

	"github.com/momentics/reactorcore/affinity"
	"github.com/momentics/reactorcore/loop"
)

// Option configures an EventLoopThread at construction time.
type Option func(*threadOptions)

type threadOptions struct {
	cpuID int
}

// WithAffinity pins the dedicated OS thread to cpuID via
// affinity.Pin(cpuID, -1). Without this option, no pinning occurs.
func WithAffinity(cpuID int) Option {
	return func(o *threadOptions) { o.cpuID = cpuID }
}

// EventLoopThread hosts exactly one EventLoop on its own goroutine.
type EventLoopThread struct {
	cpuID int
	cfg   loop.Config

	loop         *loop.EventLoop
	constructErr error

	ready  chan struct{}
	runCh  chan struct{}
	doneCh chan struct{}

	runOnce  sync.Once
	stopOnce sync.Once
}

// NewEventLoopThread spawns the dedicated goroutine and blocks until it
// has either constructed its EventLoop or failed to. Pass
// WithAffinity(cpuID) to pin the thread to a CPU.
func NewEventLoopThread(cfg loop.Config, opts ...Option) (*EventLoopThread, error) {
	o := threadOptions{cpuID: -1}
	for _, opt := range opts {
		opt(&o)
	}
	t := &EventLoopThread{
		cfg:    cfg,
		cpuID:  o.cpuID,
		ready:  make(chan struct{}),
		runCh:  make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go t.threadMain()
	<-t.ready
	if t.constructErr != nil {
		return nil, t.constructErr
	}
	return t, nil
}

func (t *EventLoopThread) threadMain() {
	defer close(t.doneCh)
	runtime.LockOSThread()

	if t.cpuID >= 0 {
		if err := affinity.Pin(t.cpuID, -1); err != nil {
			logger.ErrorFromErr(err)
		}
	}

	l, err := loop.NewEventLoop(t.cfg)
	if err != nil {
		t.constructErr = err
		close(t.ready)
		return
	}
	t.loop = l
	close(t.ready)

	<-t.runCh
	l.Loop()
}

// Loop returns the thread's EventLoop. Valid immediately after
// NewEventLoopThread returns successfully.
func (t *EventLoopThread) Loop() *loop.EventLoop { return t.loop }

// Run releases the latch that lets the dedicated goroutine enter the
// loop body. Idempotent.
func (t *EventLoopThread) Run() {
	t.runOnce.Do(func() { close(t.runCh) })
}

// Stop quits the loop and joins the dedicated goroutine. Idempotent.
// Safe to call even if Run was never called.
func (t *EventLoopThread) Stop() {
	t.stopOnce.Do(func() {
		t.Run()
		if t.loop != nil {
			t.loop.Quit()
		}
	})
	<-t.doneCh
}
