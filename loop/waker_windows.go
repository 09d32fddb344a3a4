//go:build windows

// File: loop/waker_windows.go
// Author: momentics <momentics@gmail.com>
//
// IOCP-backed waker: option (c) of spec.md section 4.4's wake-up
// protocol. The poller's PostEvent already injects a completion packet
// directly, so no channel needs to be registered.

package loop

import "github.com/momentics/reactorcore/api"

type iocpWaker struct {
	post func(uint64) error
}

func newWaker(p pollerPoster) (waker, api.Channel, error) {
	return &iocpWaker{post: p.PostEvent}, nil, nil
}

func (w *iocpWaker) signal() error { return w.post(1) }
func (w *iocpWaker) close() error  { return nil }
