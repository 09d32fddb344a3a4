// File: timingwheel/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package timingwheel implements the hierarchical, cascading timing wheel
// (C3) used for O(1) amortized insertion/eviction of coarse-grained,
// frequently-refreshed deadlines such as idle-connection timeouts. Unlike
// timer.Store, entries are not individually cancellable by id; instead an
// Entry is a reference-counted handle whose eviction callback fires exactly
// once, when its last strong reference is swept out of the innermost wheel.
// Re-inserting the same Entry before it fires is how callers implement
// "touch this connection, push its timeout back out" without any explicit
// cancel/reschedule pair.
package timingwheel
