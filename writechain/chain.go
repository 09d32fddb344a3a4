// File: writechain/chain.go
// Author: momentics <momentics@gmail.com>
//
// Chain is the ordered write queue described in spec.md section 4.6's
// opening paragraph. Modeled on pool/batch.go's BufferBatch: a plain
// slice, append-only growth, and an explicit Reset — generalized here
// from a flat batch of api.Buffer into a FIFO of heterogeneous Node
// variants with head-pull/advance/drop semantics.

package writechain

// Chain is an ordered queue of write-chain nodes. Not safe for
// concurrent use; a Chain is confined to the loop that owns its
// connection.
type Chain struct {
	nodes []Node
}

// NewChain constructs an empty chain with room for capacity nodes.
func NewChain(capacity int) *Chain {
	return &Chain{nodes: make([]Node, 0, capacity)}
}

// Push appends a node to the tail of the chain.
func (c *Chain) Push(n Node) {
	c.nodes = append(c.nodes, n)
}

// Len reports how many nodes remain in the chain.
func (c *Chain) Len() int { return len(c.nodes) }

// Empty reports whether the chain has no nodes left.
func (c *Chain) Empty() bool { return len(c.nodes) == 0 }

// Pull returns the unsent bytes of the head node, or nil if the chain
// is empty. The returned slice is only valid until the next Pull or
// Advance call.
func (c *Chain) Pull() []byte {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0].GetData()
}

// Head returns the head node itself, for transports that need to
// bypass Pull (e.g. a sendfile-capable FileNode), or nil if empty.
func (c *Chain) Head() Node {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0]
}

// Advance retires n bytes starting at the head node, dropping each node
// that reports RemainingBytes()==0 and Done (running its cleanup hook if
// it has one) and carrying the rest of n into the next node. Returns the
// number of nodes dropped.
func (c *Chain) Advance(n int) int {
	dropped := 0
	for n > 0 && len(c.nodes) > 0 {
		head := c.nodes[0]
		take := n
		if remaining := head.RemainingBytes(); take > remaining {
			take = remaining
		}
		head.Retrieve(take)
		n -= take
		if head.RemainingBytes() == 0 && head.Done() {
			c.dropHead()
			dropped++
			continue
		}
		break
	}
	return dropped
}

// Reap drops any exhausted nodes at the head that are Done, without
// requiring a Retrieve call — used after an async-stream or
// stream-callback node reaches end-of-stream with zero remaining
// bytes but was never explicitly advanced past.
func (c *Chain) Reap() int {
	dropped := 0
	for len(c.nodes) > 0 {
		head := c.nodes[0]
		if head.RemainingBytes() > 0 || !head.Done() {
			break
		}
		c.dropHead()
		dropped++
	}
	return dropped
}

func (c *Chain) dropHead() {
	if closer, ok := c.nodes[0].(interface{ closeNode() }); ok {
		closer.closeNode()
	}
	c.nodes[0] = nil
	c.nodes = c.nodes[1:]
}

// Reset drops every remaining node, running cleanup hooks, retaining
// the underlying slice capacity.
func (c *Chain) Reset() {
	for _, n := range c.nodes {
		if closer, ok := n.(interface{ closeNode() }); ok {
			closer.closeNode()
		}
	}
	for i := range c.nodes {
		c.nodes[i] = nil
	}
	c.nodes = c.nodes[:0]
}
