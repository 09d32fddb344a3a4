// File: pool/objectpool.go
// Author: momentics <momentics@gmail.com>
//
// SyncPool implements api.ObjectPool[T] by wrapping sync.Pool, ported
// directly from the teacher's pool/objpool.go: unlike byte buffers,
// arbitrary pooled objects have no natural size class to bucket by, so
// this stays with sync.Pool's GC-aware eviction rather than the
// fixed-capacity Ring used by BytePool.

package pool

import (
	"sync"

	"github.com/momentics/reactorcore/api"
)

// SyncPool is a generic api.ObjectPool backed by sync.Pool.
type SyncPool[T any] struct {
	pool *sync.Pool
}

// NewSyncPool constructs a SyncPool whose Get calls creator when the
// pool is empty.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{pool: &sync.Pool{New: func() any { return creator() }}}
}

// Get returns a pooled instance, creating one if none is available.
func (p *SyncPool[T]) Get() T { return p.pool.Get().(T) }

// Put returns obj to the pool for reuse.
func (p *SyncPool[T]) Put(obj T) { p.pool.Put(obj) }

var _ api.ObjectPool[int] = (*SyncPool[int])(nil)
