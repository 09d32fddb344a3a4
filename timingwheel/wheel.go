// File: timingwheel/wheel.go
// Author: momentics <momentics@gmail.com>
//
// Hierarchical cascading timing wheel, ported from the algorithm in
// original_source/trantor/net/core/TimingWheel.cc (not reproduced from
// that file's text — re-expressed as Go ring buffers in place of the
// C++ deque-of-unordered_set buckets). Wheel owns no goroutine of its
// own: a driver (loop.EventLoop, or a plain time.Ticker for standalone
// use) calls Advance once per tickInterval; Wheel does the bucket
// bookkeeping and cascade math synchronously on that call.
package timingwheel

import (
	"time"

	"golang.org/x/sys/cpu"
)

// wheelsNum and bucketsPerWheel are exposed as constructor parameters
// (W wheels of B buckets each in spec.md's notation) rather than fixed,
// matching trantor's constructor signature (ticksInterval, bucketsNumPerWheel,
// wheelsNum, loop).

// item is a single slot occupant. Exactly one of (entry) or
// (cascade) is meaningful at a time: a terminal item releases a
// user Entry when its bucket fires; a cascade item re-homes its wrapped
// item one wheel further in when its bucket fires.
type item struct {
	entry       *Entry // non-nil for a terminal item
	cascade     *item  // non-nil for a cascade item: the item to re-home
	wheelIdx    int    // wheel the cascade item re-homes into
	capturedT   uint64 // ticksCounter snapshot at creation time
	residualLen int    // delay snapshot at creation time, pre-division
}

// wheel is one level of the hierarchy: a ring of bucketsPerWheel slots,
// each an unordered bag of items, plus a front index that advances one
// slot every time this level ticks. front is the hottest field on the
// tick path (every Advance call touches level 0's); padded so adjacent
// levels' front counters don't share a cache line, the same false
// sharing concern core/concurrency/ring.go solves by hand for its
// head/tail pair, here via the ecosystem's own padding primitive.
type wheel struct {
	front   int
	_       cpu.CacheLinePad
	buckets [][]*item
}

// Wheel is the hierarchical timing wheel described in spec.md section
// 4.3: W levels of B buckets, coarsest-grained outer levels cascading
// entries down into finer-grained inner levels as they approach their
// deadline.
type Wheel struct {
	levels          []wheel
	bucketsPerWheel int
	ticksCounter    uint64
	tickInterval    time.Duration
}

// NewWheel constructs a Wheel with wheelsNum levels of bucketsPerWheel
// buckets each. A non-positive value for either is raised to 1.
func NewWheel(bucketsPerWheel, wheelsNum int) *Wheel {
	if bucketsPerWheel <= 0 {
		bucketsPerWheel = 1
	}
	if wheelsNum <= 0 {
		wheelsNum = 1
	}
	w := &Wheel{
		levels:          make([]wheel, wheelsNum),
		bucketsPerWheel: bucketsPerWheel,
	}
	for i := range w.levels {
		w.levels[i].buckets = make([][]*item, bucketsPerWheel)
	}
	return w
}

// InsertEntry binds entry into the wheel so that its reference is
// released no sooner than delayTicks ticks from now (delayTicks == 0
// fires on the very next Advance). entry may be inserted more than
// once — touching a live connection's deadline is exactly "insert the
// same Entry again"; the earlier reference still fires on its own
// schedule and is harmless since Entry.release is refcounted.
func (w *Wheel) InsertEntry(delayTicks int, entry *Entry) {
	if delayTicks < 0 {
		delayTicks = 0
	}
	entry.addRef()
	it := &item{entry: entry}
	w.insert(delayTicks+1, w.ticksCounter, it)
}

// insert places it so it fires after "delay" ticks counted from the
// wheel's current absolute tick t, cascading through outer levels when
// delay overflows a single level's span — the same recursive shape as
// trantor's insertEntryInLoop.
func (w *Wheel) insert(delay int, t uint64, it *item) {
	b := w.bucketsPerWheel
	for i := range w.levels {
		if delay <= b {
			idx := (w.levels[i].front + delay - 1) % b
			w.levels[i].buckets[idx] = append(w.levels[i].buckets[idx], it)
			return
		}
		if i < len(w.levels)-1 {
			cascaded := &item{cascade: it, wheelIdx: i, capturedT: t, residualLen: delay}
			nextDelay := (delay + int(t%uint64(b)) - 1) / b
			nextT := t / uint64(b)
			it = cascaded
			delay = nextDelay
			t = nextT
			continue
		}
		// Overflow past the outermost level: clamp into its last bucket
		// rather than silently dropping the reference.
		idx := (w.levels[i].front + b - 1) % b
		w.levels[i].buckets[idx] = append(w.levels[i].buckets[idx], it)
		return
	}
}

// fireCascade re-homes a cascade item's wrapped item one level further
// in. The formula matches trantor's CallbackEntry reinsertion lambda
// exactly: it yields a position relative to that level's own "next
// tick" slot, which this ring implementation maps through the level's
// current front (trantor's deque instead physically rotates so index 0
// is always next-tick, making that offset implicit).
func (w *Wheel) fireCascade(c *item) {
	b := w.bucketsPerWheel
	logical := (c.residualLen + int(c.capturedT%uint64(b)) - 1) % b
	if logical < 0 {
		logical += b
	}
	lvl := &w.levels[c.wheelIdx]
	idx := (lvl.front + logical) % b
	lvl.buckets[idx] = append(lvl.buckets[idx], c.cascade)
}

// Advance moves the wheel forward by exactly one tick: the innermost
// level always sweeps its current bucket; level i sweeps only when the
// running tick count is divisible by bucketsPerWheel^i, matching
// trantor's "t % pow == 0" per-level condition.
func (w *Wheel) Advance() {
	w.ticksCounter++
	t := w.ticksCounter
	pow := uint64(1)
	b := uint64(w.bucketsPerWheel)
	for i := range w.levels {
		if t%pow == 0 {
			lvl := &w.levels[i]
			bucket := lvl.buckets[lvl.front]
			lvl.buckets[lvl.front] = nil
			lvl.front = (lvl.front + 1) % w.bucketsPerWheel
			for _, it := range bucket {
				if it.entry != nil {
					it.entry.release()
				} else {
					w.fireCascade(it)
				}
			}
		}
		pow *= b
	}
}

// Ticks reports the number of Advance calls observed so far.
func (w *Wheel) Ticks() uint64 { return w.ticksCounter }

// BucketsPerWheel reports B, the bucket count of each level.
func (w *Wheel) BucketsPerWheel() int { return w.bucketsPerWheel }

// NumWheels reports W, the number of hierarchy levels.
func (w *Wheel) NumWheels() int { return len(w.levels) }

// TickInterval reports the wall-clock duration a driver was told
// corresponds to one Advance call, or zero if BindTickInterval was
// never called. Purely a diagnostic accessor: bucket placement and
// cascade math operate on abstract tick counts and never consult it.
func (w *Wheel) TickInterval() time.Duration { return w.tickInterval }

// BindTickInterval records the wall-clock duration between Advance
// calls for diagnostics (e.g. loop.NewEventLoop sets this to the
// interval it actually schedules its driving timer at).
func (w *Wheel) BindTickInterval(d time.Duration) { w.tickInterval = d }
