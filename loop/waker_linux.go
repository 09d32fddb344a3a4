//go:build linux

// File: loop/waker_linux.go
// Author: momentics <momentics@gmail.com>
//
// eventfd-backed waker: option (a) of spec.md section 4.4's wake-up
// protocol, a single descriptor registered as a readable channel.

package loop

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/reactorcore/api"
)

type eventfdWaker struct {
	fd int
}

func newWaker(pollerPoster) (waker, api.Channel, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, nil, err
	}
	w := &eventfdWaker{fd: fd}
	return w, w, nil
}

func (w *eventfdWaker) signal() error {
	var buf [8]byte
	buf[7] = 1
	_, err := unix.Write(w.fd, buf[:])
	if err == unix.EAGAIN {
		return nil
	}
	return err
}

func (w *eventfdWaker) close() error { return unix.Close(w.fd) }

func (w *eventfdWaker) FD() uintptr              { return uintptr(w.fd) }
func (w *eventfdWaker) Interest() api.InterestMask { return api.InterestRead }
func (w *eventfdWaker) HandleRead() {
	var buf [8]byte
	_, _ = unix.Read(w.fd, buf[:])
}
func (w *eventfdWaker) HandleWrite() {}
func (w *eventfdWaker) HandleError() {}
func (w *eventfdWaker) HandleClose() {}
