// File: threadpool/threadpool_test.go
// Author: momentics <momentics@gmail.com>

package threadpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/reactorcore/affinity"
	"github.com/momentics/reactorcore/loop"
)

func TestEventLoopThreadPublishesLoopAndRunsOnlyAfterRun(t *testing.T) {
	th, err := NewEventLoopThread(loop.Config{})
	if err != nil {
		t.Fatalf("NewEventLoopThread: %v", err)
	}
	if th.Loop() == nil {
		t.Fatal("expected loop to be published before constructor returns")
	}

	ran := make(chan struct{}, 1)
	th.Loop().QueueInLoop(func() { ran <- struct{}{} })

	select {
	case <-ran:
		t.Fatal("task must not run before Run() releases the latch")
	case <-time.After(30 * time.Millisecond):
	}

	th.Run()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran after Run()")
	}
	th.Stop()
}

func TestEventLoopThreadStopIsIdempotentAndJoins(t *testing.T) {
	th, err := NewEventLoopThread(loop.Config{})
	if err != nil {
		t.Fatalf("NewEventLoopThread: %v", err)
	}
	th.Run()
	th.Stop()
	th.Stop() // must not panic or hang
}

func TestEventLoopThreadWithAffinityPinsReportedCPU(t *testing.T) {
	_ = affinity.Unpin()

	th, err := NewEventLoopThread(loop.Config{}, WithAffinity(0))
	if err != nil {
		t.Fatalf("NewEventLoopThread: %v", err)
	}
	th.Run()
	// Stop joins threadMain, which calls affinity.Pin(0, -1) before ever
	// entering the loop body, so by the time it returns the pin attempt
	// has already happened.
	th.Stop()

	cpuID, _, err := affinity.Get()
	if err != nil {
		t.Fatalf("affinity.Get: %v", err)
	}
	if cpuID != 0 {
		t.Skipf("pthread_setaffinity_np did not take effect in this environment (Get() reported cpuID=%d); WithAffinity wiring was still exercised", cpuID)
	}
}

func TestEventLoopThreadPoolDistributesRoundRobin(t *testing.T) {
	p, err := NewEventLoopThreadPool(3, loop.Config{}, -1)
	if err != nil {
		t.Fatalf("NewEventLoopThreadPool: %v", err)
	}
	defer p.Stop()

	seen := map[*loop.EventLoop]bool{}
	for i := 0; i < 6; i++ {
		seen[p.GetNextLoop()] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected round-robin to touch all 3 loops, touched %d", len(seen))
	}
}

func TestSerialTaskQueueRunsInOrder(t *testing.T) {
	q, err := NewSerialTaskQueue(loop.Config{})
	if err != nil {
		t.Fatalf("NewSerialTaskQueue: %v", err)
	}
	defer q.Stop()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(3)
	for i := 1; i <= 3; i++ {
		n := i
		q.Run(func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, want := range []int{1, 2, 3} {
		if order[i] != want {
			t.Fatalf("expected order %v, got %v", []int{1, 2, 3}, order)
		}
	}
}

func TestConcurrentTaskQueueRunsAllSubmittedTasks(t *testing.T) {
	q := NewConcurrentTaskQueue(4)
	defer q.Stop()

	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		q.Submit(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	if count.Load() != 20 {
		t.Fatalf("count = %d, want 20", count.Load())
	}
}

func TestConcurrentTaskQueueSurvivesPanickingTask(t *testing.T) {
	q := NewConcurrentTaskQueue(2)
	defer q.Stop()

	var wg sync.WaitGroup
	wg.Add(2)
	q.Submit(func() {
		defer wg.Done()
		panic("boom")
	})
	q.Submit(func() {
		defer wg.Done()
	})
	wg.Wait()
}

func TestConcurrentTaskQueueStopIsIdempotentAndJoins(t *testing.T) {
	q := NewConcurrentTaskQueue(2)
	q.Stop()
	q.Stop() // must not panic or hang
}

func TestConcurrentTaskQueueSubmitAfterStopReportsError(t *testing.T) {
	q := NewConcurrentTaskQueue(2)
	q.Stop()
	if err := q.Submit(func() {}); err != ErrQueueStopped {
		t.Fatalf("Submit after Stop = %v, want ErrQueueStopped", err)
	}
}

func TestConcurrentTaskQueueNumWorkersReportsConstructedCount(t *testing.T) {
	q := NewConcurrentTaskQueue(5)
	defer q.Stop()
	if got := q.NumWorkers(); got != 5 {
		t.Fatalf("NumWorkers() = %d, want 5", got)
	}
}

func TestConcurrentTaskQueueStopWithTimeoutReportsDrainOutcome(t *testing.T) {
	q := NewConcurrentTaskQueue(1)
	block := make(chan struct{})
	q.Submit(func() { <-block })

	if q.StopWithTimeout(50 * time.Millisecond) {
		t.Fatal("expected StopWithTimeout to report false while the worker is still blocked")
	}
	close(block)
	if !q.StopWithTimeout(2 * time.Second) {
		t.Fatal("expected StopWithTimeout to report true once the worker unblocks")
	}
}
