//go:build linux

// File: reactor/reactor_linux_test.go
// Author: momentics <momentics@gmail.com>

package reactor

import (
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/reactorcore/api"
)

// testChannel is a minimal api.Channel backed by a real descriptor,
// used to exercise the epoll backend against actual socket I/O instead
// of a mock of the poller itself.
type testChannel struct {
	fd       uintptr
	interest api.InterestMask
	onRead   func()
	onWrite  func()
	onError  func()
	onClose  func()
}

func (c *testChannel) FD() uintptr               { return c.fd }
func (c *testChannel) Interest() api.InterestMask { return c.interest }
func (c *testChannel) HandleRead() {
	if c.onRead != nil {
		c.onRead()
	}
}
func (c *testChannel) HandleWrite() {
	if c.onWrite != nil {
		c.onWrite()
	}
}
func (c *testChannel) HandleError() {
	if c.onError != nil {
		c.onError()
	}
}
func (c *testChannel) HandleClose() {
	if c.onClose != nil {
		c.onClose()
	}
}

func socketPair(t *testing.T) (client, server int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	if err := unix.SetNonblock(fds[1], true); err != nil {
		t.Fatalf("set nonblock: %v", err)
	}
	return fds[0], fds[1]
}

// TestEpollPollerEchoesWithinDeadline is spec.md section 8 scenario 1: a
// socket pair's read end is registered, "hello" is written from the
// other end, and the server channel's read callback echoes it back,
// all observed through the real Poller within 100ms.
func TestEpollPollerEchoesWithinDeadline(t *testing.T) {
	clientFd, serverFd := socketPair(t)
	defer unix.Close(clientFd)

	p, err := NewPoller()
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	defer p.Close()

	server := &testChannel{fd: uintptr(serverFd), interest: api.InterestRead}
	server.onRead = func() {
		buf := make([]byte, 64)
		n, err := unix.Read(serverFd, buf)
		if err != nil || n == 0 {
			return
		}
		_, _ = unix.Write(serverFd, buf[:n])
	}
	if err := p.UpdateChannel(server); err != nil {
		t.Fatalf("UpdateChannel: %v", err)
	}

	if _, err := unix.Write(clientFd, []byte("hello")); err != nil {
		t.Fatalf("client write: %v", err)
	}

	deadline := time.Now().Add(100 * time.Millisecond)
	var active []ReadyChannel
	for time.Now().Before(deadline) {
		active = active[:0]
		if err := p.Poll(10*time.Millisecond, &active); err != nil {
			t.Fatalf("Poll: %v", err)
		}
		for _, r := range active {
			if r.Events.Has(api.EventRead) {
				r.Channel.HandleRead()
			}
		}

		buf := make([]byte, 64)
		_ = unix.SetNonblock(clientFd, true)
		if n, err := unix.Read(clientFd, buf); err == nil && n > 0 {
			if string(buf[:n]) != "hello" {
				t.Fatalf("echoed %q, want %q", string(buf[:n]), "hello")
			}
			return
		}
	}
	t.Fatal("echo never arrived back at client within 100ms")
}

// TestEpollPollerReportsErrorAndCloseBits confirms Poll decodes
// EPOLLERR/EPOLLHUP into api.EventError/api.EventClose instead of
// folding every readiness transition into EventRead, which dispatch
// depends on to fire HandleError/HandleClose at all.
func TestEpollPollerReportsErrorAndCloseBits(t *testing.T) {
	clientFd, serverFd := socketPair(t)

	p, err := NewPoller()
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	defer p.Close()

	server := &testChannel{fd: uintptr(serverFd), interest: api.InterestRead}
	if err := p.UpdateChannel(server); err != nil {
		t.Fatalf("UpdateChannel: %v", err)
	}

	if err := unix.Close(clientFd); err != nil {
		t.Fatalf("close client: %v", err)
	}

	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		var active []ReadyChannel
		if err := p.Poll(10*time.Millisecond, &active); err != nil {
			t.Fatalf("Poll: %v", err)
		}
		for _, r := range active {
			if r.Channel != server {
				continue
			}
			if r.Events.Has(api.EventClose) || r.Events.Has(api.EventError) {
				return
			}
		}
	}
	t.Fatal("peer shutdown never reported as EventClose/EventError within 100ms")
}

// TestRemoveChannelStopsFurtherReports confirms the Poller contract
// that after RemoveChannel returns, no further callbacks for c fire.
func TestRemoveChannelStopsFurtherReports(t *testing.T) {
	clientFd, serverFd := socketPair(t)
	defer unix.Close(clientFd)

	p, err := NewPoller()
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	defer p.Close()

	var reads atomic.Int64
	server := &testChannel{fd: uintptr(serverFd), interest: api.InterestRead}
	server.onRead = func() {
		reads.Add(1)
		buf := make([]byte, 64)
		_, _ = unix.Read(serverFd, buf)
	}
	if err := p.UpdateChannel(server); err != nil {
		t.Fatalf("UpdateChannel: %v", err)
	}

	if _, err := unix.Write(clientFd, []byte("a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	drainUntilReadOnce(t, p, &reads)

	if err := p.RemoveChannel(server); err != nil {
		t.Fatalf("RemoveChannel: %v", err)
	}

	if _, err := unix.Write(clientFd, []byte("b")); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var active []ReadyChannel
	if err := p.Poll(10*time.Millisecond, &active); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	for _, r := range active {
		if r.Channel == server {
			t.Fatal("channel reported again after RemoveChannel")
		}
	}
}

func drainUntilReadOnce(t *testing.T, p Poller, reads *atomic.Int64) {
	t.Helper()
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		var active []ReadyChannel
		if err := p.Poll(10*time.Millisecond, &active); err != nil {
			t.Fatalf("Poll: %v", err)
		}
		for _, r := range active {
			if r.Events.Has(api.EventRead) {
				r.Channel.HandleRead()
			}
		}
		if reads.Load() > 0 {
			return
		}
	}
	t.Fatal("channel never became readable")
}
