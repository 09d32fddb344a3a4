// File: threadpool/eventloopthreadpool.go
// Author: momentics <momentics@gmail.com>

package threadpool

import (
	"sync/atomic"

	"github.com/momentics/reactorcore/loop"
)

// EventLoopThreadPool is a fixed-size vector of EventLoopThreads.
// GetNextLoop distributes new connections round-robin; GetLoop(i)
// returns a stable per-index loop for explicit pinning.
type EventLoopThreadPool struct {
	threads []*EventLoopThread
	next    atomic.Uint64
}

// NewEventLoopThreadPool constructs n threads, each running cfg. If
// baseCPU >= 0, thread i is pinned to CPU baseCPU+i; otherwise no
// pinning occurs. Every thread's loop is running by the time this
// returns. On any construction failure, already-started threads are
// stopped before the error is returned.
func NewEventLoopThreadPool(n int, cfg loop.Config, baseCPU int) (*EventLoopThreadPool, error) {
	if n <= 0 {
		n = 1
	}
	p := &EventLoopThreadPool{threads: make([]*EventLoopThread, 0, n)}
	for i := 0; i < n; i++ {
		var opts []Option
		if baseCPU >= 0 {
			opts = append(opts, WithAffinity(baseCPU+i))
		}
		t, err := NewEventLoopThread(cfg, opts...)
		if err != nil {
			p.Stop()
			return nil, err
		}
		t.Run()
		p.threads = append(p.threads, t)
	}
	return p, nil
}

// GetNextLoop returns loops in round-robin order. Relaxed ordering is
// sufficient: perfect uniformity across producers is not required.
func (p *EventLoopThreadPool) GetNextLoop() *loop.EventLoop {
	idx := p.next.Add(1) - 1
	return p.threads[idx%uint64(len(p.threads))].Loop()
}

// GetLoop returns the loop at a stable index, for explicit pinning of
// a connection to a particular thread.
func (p *EventLoopThreadPool) GetLoop(i int) *loop.EventLoop {
	return p.threads[i].Loop()
}

// Size reports the number of loops in the pool.
func (p *EventLoopThreadPool) Size() int { return len(p.threads) }

// Stop quits and joins every thread in the pool.
func (p *EventLoopThreadPool) Stop() {
	for _, t := range p.threads {
		t.Stop()
	}
}
