// File: pool/msgbufferpool.go
// Author: momentics <momentics@gmail.com>
//
// MsgBufferPool recycles buffer.MsgBuffer instances across connection
// lifetimes: a connection's buffer is only useful while the connection
// is open, and building a fresh one per accept churns the allocator
// under high connection turnover — the same concern the teacher's
// per-connection bufferpool.go addresses for raw byte buffers, applied
// here to the whole MsgBuffer.

package pool

import "github.com/momentics/reactorcore/buffer"

// MsgBufferPool hands out buffer.MsgBuffer instances reset to their
// initial, empty state.
type MsgBufferPool struct {
	inner *SyncPool[*buffer.MsgBuffer]
}

// NewMsgBufferPool constructs a pool whose fresh instances use
// buffer.New's defaults.
func NewMsgBufferPool() *MsgBufferPool {
	return &MsgBufferPool{inner: NewSyncPool(func() *buffer.MsgBuffer { return buffer.New() })}
}

// Get returns a MsgBuffer with an empty readable region.
func (p *MsgBufferPool) Get() *buffer.MsgBuffer { return p.inner.Get() }

// Put drains b and returns it to the pool. b must not be used again by
// the caller afterward.
func (p *MsgBufferPool) Put(b *buffer.MsgBuffer) {
	b.RetrieveAll()
	p.inner.Put(b)
}
