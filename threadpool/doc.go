// File: threadpool/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package threadpool implements C6's thread bindings: EventLoopThread
// (a dedicated goroutine hosting one loop.EventLoop, published to its
// creator via a one-shot latch), EventLoopThreadPool (round-robin
// distribution of connections across a fixed set of loops),
// SerialTaskQueue (a single EventLoopThread used purely as a task
// sink), and ConcurrentTaskQueue (a classic mutex+condvar worker pool
// for CPU-bound work that must not run on a loop thread).
package threadpool
