// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
//
// A size-classed, single-node api.BytePool, adapted from the teacher's
// NUMA-segmented pool/slab_pool.go and pool/bufferpool.go by dropping
// the per-NUMA-node routing: spec.md names no NUMA topology concept, so
// every size class pools on one Ring[[]byte] free list instead of one
// subpool per node. The size-class table and "round up to the smallest
// class that fits" placement rule are ported directly from
// pool/bufferpool.go's sizeClassUpperBound.

package pool

import "github.com/momentics/reactorcore/api"

// defaultClassSizes doubles from 512 B (a small framing header plus a
// short payload) to 1 MiB, mirroring the teacher's 2 KiB..1 MiB table
// but starting two octaves lower; writechain's stream and file nodes
// stage 16 KiB chunks, which fall in the 16384 class.
var defaultClassSizes = []int{
	512, 1024, 2048, 4096, 8192, 16384, 32768, 65536,
	131072, 262144, 524288, 1048576,
}

const ringCapacityPerClass = 256

type slabBytePool struct {
	classes []int
	rings   []*Ring[[]byte]
}

// NewBytePool constructs a size-classed api.BytePool over
// defaultClassSizes. Requests larger than the largest class fall back
// to a plain, unpooled allocation.
func NewBytePool() api.BytePool {
	return newBytePoolWithClasses(defaultClassSizes)
}

func newBytePoolWithClasses(classes []int) *slabBytePool {
	p := &slabBytePool{
		classes: classes,
		rings:   make([]*Ring[[]byte], len(classes)),
	}
	for i := range p.rings {
		p.rings[i] = NewRing[[]byte](ringCapacityPerClass)
	}
	return p
}

// classFor returns the index of the smallest class able to hold n
// bytes, or -1 if n exceeds every class.
func (p *slabBytePool) classFor(n int) int {
	for i, c := range p.classes {
		if n <= c {
			return i
		}
	}
	return -1
}

// Acquire returns a slice of length n backed by a class-sized buffer,
// reused from the free list when one is available.
func (p *slabBytePool) Acquire(n int) []byte {
	idx := p.classFor(n)
	if idx < 0 {
		return make([]byte, n)
	}
	if buf, ok := p.rings[idx].Dequeue(); ok {
		return buf[:n]
	}
	return make([]byte, n, p.classes[idx])
}

// Release returns buf to its size class's free list. Buffers whose
// capacity does not match a class boundary exactly (i.e. never came
// from Acquire) are dropped rather than pooled, since recycling them
// would pin an arbitrary, possibly oversized allocation into a class
// it does not belong to.
func (p *slabBytePool) Release(buf []byte) {
	c := cap(buf)
	idx := p.classFor(c)
	if idx < 0 || p.classes[idx] != c {
		return
	}
	p.rings[idx].Enqueue(buf[:c])
}

var _ api.BytePool = (*slabBytePool)(nil)
