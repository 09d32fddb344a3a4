// File: loop/loop.go
// Author: momentics <momentics@gmail.com>
//
// EventLoop: the reactor core's C4 component. Owns a reactor.Poller, a
// timer.Store, a cross-thread task queue, and an on-quit queue, and
// runs the seven-step loop body of spec.md section 4.4 from Loop until
// Quit is observed.

package loop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/reactorcore/api"
	"github.com/momentics/reactorcore/reactor"
	"github.com/momentics/reactorcore/timer"
	"github.com/momentics/reactorcore/timingwheel"
)

// EventLoop drives one reactor.Poller from one goroutine for its entire
// lifetime. See doc.go for the goroutine-identity caveat on
// IsInLoopThread.
type EventLoop struct {
	cfg Config

	poller reactor.Poller
	timers *timer.Store
	tasks  *taskQueue
	wheel  *timingwheel.Wheel

	waker     waker
	wakerChan api.Channel // nil on platforms whose waker needs no channel

	onQuitMu sync.Mutex
	onQuit   []func()

	inLoop              atomic.Bool
	quitting            atomic.Bool
	consecutiveFailures atomic.Int32

	dispatching api.Channel // channel currently having its callbacks invoked, for recursive-update safety
}

// NewEventLoop constructs an EventLoop over a freshly created poller.
// The loop is not started until Loop is called.
func NewEventLoop(cfg Config) (*EventLoop, error) {
	cfg = cfg.withDefaults()

	p, err := reactor.NewPoller()
	if err != nil {
		return nil, err
	}

	l := &EventLoop{
		cfg:    cfg,
		poller: p,
		timers: timer.NewStore(),
		tasks:  newTaskQueue(cfg.TaskQueueCapacity),
	}

	w, ch, err := newWaker(p)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	l.waker = w
	l.wakerChan = ch
	if ch != nil {
		if err := p.UpdateChannel(ch); err != nil {
			_ = p.Close()
			return nil, err
		}
	}

	if cfg.TimingWheelTickInterval > 0 {
		w := timingwheel.NewWheel(cfg.TimingWheelBuckets, cfg.TimingWheelLevels)
		w.BindTickInterval(cfg.TimingWheelTickInterval)
		l.wheel = w
		// Driven by the loop's own timer store rather than RunEvery: at
		// construction time nothing else can be racing this loop, so a
		// direct AddTimer is safe and avoids requiring the caller to
		// call Loop first just to arm the driving timer.
		l.timers.AddTimer(w.Advance, time.Now().Add(cfg.TimingWheelTickInterval), cfg.TimingWheelTickInterval)
	}
	return l, nil
}

// Wheel returns the loop's optional timing wheel, or nil if
// Config.TimingWheelTickInterval was zero at construction. Callers use
// it to bind idle-timeout entries via timingwheel.NewEntry plus
// Wheel().InsertEntry, matching spec.md section 4.3's "connections are
// tracked as weak entries" idiom.
func (l *EventLoop) Wheel() *timingwheel.Wheel { return l.wheel }

// IsInLoopThread reports whether the loop is actively dispatching a
// callback on the calling goroutine. This is a best-effort heuristic:
// Go exposes no portable goroutine-identity primitive, so the flag is
// set for the loop's entire Loop()-to-Quit lifetime rather than scoped
// per-callback. It is correct for the overwhelmingly common case — a
// callback calling RunInLoop reentrantly, synchronously, from within
// its own call stack — but a goroutine spawned by a callback that later
// calls RunInLoop concurrently is NOT actually on the loop's call stack
// and must use QueueInLoop explicitly instead.
func (l *EventLoop) IsInLoopThread() bool { return l.inLoop.Load() }

// RunInLoop executes f synchronously if called while the loop is
// dispatching (see IsInLoopThread's caveat); otherwise it enqueues f
// and wakes the loop.
func (l *EventLoop) RunInLoop(f func()) {
	if l.IsInLoopThread() {
		f()
		return
	}
	l.QueueInLoop(f)
}

// QueueInLoop always enqueues f and wakes the loop, even when called
// from the loop thread itself — useful when a callback wants its
// continuation to run only after the current dispatch pass finishes.
func (l *EventLoop) QueueInLoop(f func()) {
	for !l.tasks.push(f) {
		// Bounded queue is momentarily full; the loop drains
		// continuously, so a short spin clears it quickly.
	}
	if err := l.waker.signal(); err != nil {
		l.reportIOFailure(err)
	}
}

// RunAt schedules f to run at the given time point (one-shot).
func (l *EventLoop) RunAt(at time.Time, f timer.Callback) timer.ID {
	id := timer.NextID()
	l.QueueInLoop(func() { l.timers.AddTimerWithID(id, f, at, 0) })
	return id
}

// RunAfter schedules f to run after d elapses (one-shot).
func (l *EventLoop) RunAfter(d time.Duration, f timer.Callback) timer.ID {
	return l.RunAt(time.Now().Add(d), f)
}

// RunEvery schedules f to run every interval, starting after the first
// interval elapses.
func (l *EventLoop) RunEvery(interval time.Duration, f timer.Callback) timer.ID {
	id := timer.NextID()
	at := time.Now().Add(interval)
	l.QueueInLoop(func() { l.timers.AddTimerWithID(id, f, at, interval) })
	return id
}

// InvalidateTimer cancels a previously scheduled timer. Safe from any
// thread.
func (l *EventLoop) InvalidateTimer(id timer.ID) {
	l.QueueInLoop(func() { l.timers.InvalidateTimer(id) })
}

// RunOnQuit enqueues f to run once, after the main loop exits, on the
// loop's own goroutine, in the order enqueued.
func (l *EventLoop) RunOnQuit(f func()) {
	l.onQuitMu.Lock()
	l.onQuit = append(l.onQuit, f)
	l.onQuitMu.Unlock()
}

// Quit requests termination. Safe from any thread.
func (l *EventLoop) Quit() {
	l.quitting.Store(true)
	if err := l.waker.signal(); err != nil {
		l.reportIOFailure(err)
	}
}

// MoveToCurrentThread re-binds a freshly constructed loop (one on which
// Loop has not yet been called) to the calling goroutine. It exists to
// mirror spec.md's API; because this implementation tracks "in loop"
// only for the duration Loop() actually runs, this is a documentation
// no-op kept for interface parity with the C++ original's thread-move
// semantics.
func (l *EventLoop) MoveToCurrentThread() {}

// ResetAfterFork rebuilds poller-owned kernel state after a fork.
func (l *EventLoop) ResetAfterFork() error {
	return l.poller.ResetAfterFork()
}

// UpdateChannel registers c, or updates its interest mask if already
// registered. Must be called from the loop thread.
func (l *EventLoop) UpdateChannel(c api.Channel) error {
	l.assertInLoopThread()
	return l.poller.UpdateChannel(c)
}

// RemoveChannel detaches c. Must be called from the loop thread. Safe
// to call from c's own callback: Poll has already captured the
// active-channel snapshot for the current dispatch pass, so removing c
// mid-dispatch does not affect channels already queued for a callback
// in this pass.
func (l *EventLoop) RemoveChannel(c api.Channel) error {
	l.assertInLoopThread()
	return l.poller.RemoveChannel(c)
}

func (l *EventLoop) assertInLoopThread() {
	if !l.IsInLoopThread() {
		logger.PanicFromString("loop: channel operation called off the loop thread")
	}
}

func (l *EventLoop) reportIOFailure(err error) {
	logger.ErrorFromErr(err)
	n := l.consecutiveFailures.Add(1)
	if int(n) >= l.cfg.MaxConsecutiveIOFailures {
		logger.PanicFromString("loop: too many consecutive wake-up/timer I/O failures")
	}
}

// Loop runs the seven-step loop body until Quit is observed. It must be
// called exactly once, from the goroutine that will own this loop.
func (l *EventLoop) Loop() {
	l.inLoop.Store(true)
	defer l.inLoop.Store(false)

	var active []reactor.ReadyChannel
	defer l.drainOnQuit()

	for !l.quitting.Load() {
		l.runIteration(&active)
	}
}

func (l *EventLoop) runIteration(active *[]reactor.ReadyChannel) {
	defer func() {
		if r := recover(); r != nil {
			l.quitting.Store(true)
			l.drainOnQuit()
			panic(r)
		}
	}()

	// Step 1: clear the active-channel list.
	*active = (*active)[:0]

	// Step 2: compute the poll timeout.
	timeout := l.cfg.MaxPollSlice
	if expiry, ok := l.timers.EarliestExpiry(); ok {
		if d := time.Until(expiry); d < timeout {
			timeout = d
		}
	}
	if timeout < 0 {
		timeout = 0
	}

	// Step 3: poll.
	if err := l.poller.Poll(timeout, active); err != nil {
		l.reportIOFailure(err)
		return
	}
	l.consecutiveFailures.Store(0)

	// Step 4: dispatch active channels in the order returned, using the
	// specific events the poller observed rather than the channel's
	// static interest mask.
	for _, r := range *active {
		l.dispatching = r.Channel
		dispatch(r.Channel, r.Events)
	}
	l.dispatching = nil

	// Step 5: process expired timers.
	now := time.Now()
	due := l.timers.ExpireDue(now)
	for _, t := range due {
		t.Callback()
	}
	for _, t := range due {
		l.timers.Reinsert(t, now)
	}

	// Step 6: drain the cross-thread task queue to empty.
	for {
		f, ok := l.tasks.pop()
		if !ok {
			break
		}
		f()
	}
}

// dispatch invokes the subset of c's four callbacks implied by events,
// the readiness bits the poller actually observed for c during this
// Poll pass — not c's static interest mask, which only says what c
// asked to be told about, not what happened.
func dispatch(c api.Channel, events api.EventType) {
	if events.Has(api.EventRead) {
		c.HandleRead()
	}
	if events.Has(api.EventWrite) {
		c.HandleWrite()
	}
	if events.Has(api.EventError) {
		c.HandleError()
	}
	if events.Has(api.EventClose) {
		c.HandleClose()
	}
}

func (l *EventLoop) drainOnQuit() {
	l.onQuitMu.Lock()
	fs := l.onQuit
	l.onQuit = nil
	l.onQuitMu.Unlock()
	for _, f := range fs {
		f()
	}
}

// Close releases the loop's poller and waker resources. Call only after
// Loop has returned.
func (l *EventLoop) Close() error {
	_ = l.waker.close()
	return l.poller.Close()
}
