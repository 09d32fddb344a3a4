// File: writechain/node.go
// Author: momentics <momentics@gmail.com>

package writechain

// Node is one element of an outgoing write chain. Invariant: a node
// with RemainingBytes()==0 that reports Done is exhausted and may be
// dropped from the chain.
type Node interface {
	// GetData returns the next unsent bytes. The returned slice is only
	// valid until the next call to GetData or Retrieve.
	GetData() []byte

	// Retrieve marks n bytes (as returned by the most recent GetData)
	// as sent, advancing the node past them.
	Retrieve(n int)

	// RemainingBytes reports how many bytes the node still has to
	// offer. A stream or async-stream node may report 0 transiently
	// while waiting on its producer without being exhausted; Done
	// distinguishes the two.
	RemainingBytes() int

	// IsFile reports whether this node wraps an open file region.
	IsFile() bool
	// IsStream reports whether this node pulls from a callback.
	IsStream() bool
	// IsAsync reports whether this node is fed by a producer on
	// another goroutine.
	IsAsync() bool

	// Done reports whether the node is permanently exhausted: no more
	// bytes will ever become available, and the chain may drop it as
	// soon as RemainingBytes()==0.
	Done() bool
}
