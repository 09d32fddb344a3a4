// File: writechain/stream_node.go
// Author: momentics <momentics@gmail.com>

package writechain

import "github.com/momentics/reactorcore/api"

// StreamPullFunc fills dst with up to len(dst) bytes and returns the
// count actually written. Returning 0 signals end-of-stream. A nil dst
// is the cleanup call made exactly once when the node is closed; the
// callback should treat it as a signal to release any resources it
// holds and must return 0.
type StreamPullFunc func(dst []byte) int

// StreamNode pulls bytes from a user callback on demand, in
// StreamChunkSize increments, until the callback reports end-of-stream.
type StreamNode struct {
	pull    StreamPullFunc
	pool    api.BytePool
	staging []byte
	off     int
	ended   bool
	closed  bool
}

// NewStreamNode constructs a node that reads from pull, staging each
// chunk in a buffer drawn from the shared package byte pool.
func NewStreamNode(pull StreamPullFunc) *StreamNode {
	return NewStreamNodeWithPool(pull, defaultBytePool)
}

// NewStreamNodeWithPool is NewStreamNode with an explicit staging pool,
// for callers that want isolation from the shared default.
func NewStreamNodeWithPool(pull StreamPullFunc, bp api.BytePool) *StreamNode {
	return &StreamNode{pull: pull, pool: bp}
}

func (n *StreamNode) refill() {
	if n.ended || n.off < len(n.staging) {
		return
	}
	if n.staging != nil {
		n.pool.Release(n.staging)
		n.staging = nil
	}
	buf := n.pool.Acquire(StreamChunkSize)
	got := n.pull(buf)
	if got <= 0 {
		n.pool.Release(buf)
		n.ended = true
		n.staging = nil
		n.off = 0
		return
	}
	n.staging = buf[:got]
	n.off = 0
}

func (n *StreamNode) GetData() []byte {
	n.refill()
	return n.staging[n.off:]
}

func (n *StreamNode) Retrieve(sent int) {
	n.off += sent
	if n.off > len(n.staging) {
		n.off = len(n.staging)
	}
}

func (n *StreamNode) RemainingBytes() int {
	n.refill()
	return len(n.staging) - n.off
}

func (n *StreamNode) IsFile() bool   { return false }
func (n *StreamNode) IsStream() bool { return true }
func (n *StreamNode) IsAsync() bool  { return false }

func (n *StreamNode) Done() bool {
	n.refill()
	return n.ended && n.off >= len(n.staging)
}

// closeNode runs the one-time cleanup pull with a nil sink, per
// spec: a destructor-equivalent notification, not a data request.
func (n *StreamNode) closeNode() {
	if n.closed {
		return
	}
	n.closed = true
	if n.staging != nil {
		n.pool.Release(n.staging)
		n.staging = nil
	}
	n.pull(nil)
}
