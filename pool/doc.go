// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package pool provides the reuse primitives api/pool.go and
// api/ring.go declare: a size-classed api.BytePool (bytepool.go) over
// a generic lock-free api.Ring (ring.go), a generic api.ObjectPool
// (objectpool.go) wrapping sync.Pool, and MsgBufferPool, a typed
// convenience over the generic pool for buffer.MsgBuffer reuse across
// connection lifetimes. writechain's stream and file nodes use the
// BytePool for their staging buffers; nothing in spec.md's core
// algorithms requires pooling, so this package exists purely to give
// the ambient "zero-copy allocators for buffer and object reuse"
// concern from api/pool.go's doc comment an actual home, the way the
// teacher's own pool package backs its api.BufferPool/api.Ring
// declarations with concrete NUMA-aware implementations.
package pool
