//go:build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based poller. Level-triggered: EPOLLET is deliberately
// not set, because spec.md section 4.1 requires a descriptor that is
// still ready after a callback returns to be reported again on the next
// Poll.

package reactor

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/reactorcore/api"
)

const maxEpollEvents = 256

type epollPoller struct {
	epfd     int
	channels map[uintptr]api.Channel
	raw      []unix.EpollEvent
}

// NewPoller constructs the Linux epoll-backed Poller.
func NewPoller() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{
		epfd:     epfd,
		channels: make(map[uintptr]api.Channel),
		raw:      make([]unix.EpollEvent, maxEpollEvents),
	}, nil
}

func interestToEpoll(m api.InterestMask) uint32 {
	var ev uint32
	if m.Has(api.InterestRead) {
		ev |= unix.EPOLLIN
	}
	if m.Has(api.InterestWrite) {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func (p *epollPoller) UpdateChannel(c api.Channel) error {
	fd := c.FD()
	ev := unix.EpollEvent{
		Events: interestToEpoll(c.Interest()),
		Fd:     int32(fd),
	}
	_, existed := p.channels[fd]
	op := unix.EPOLL_CTL_ADD
	if existed {
		op = unix.EPOLL_CTL_MOD
	}
	if err := unix.EpollCtl(p.epfd, op, int(fd), &ev); err != nil {
		return err
	}
	p.channels[fd] = c
	return nil
}

func (p *epollPoller) RemoveChannel(c api.Channel) error {
	fd := c.FD()
	if _, ok := p.channels[fd]; !ok {
		return nil
	}
	// EPOLL_CTL_DEL ignores the event argument on modern kernels but older
	// ones require a non-nil pointer.
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, int(fd), &unix.EpollEvent{}); err != nil {
		return err
	}
	delete(p.channels, fd)
	return nil
}

func (p *epollPoller) Poll(timeout time.Duration, active *[]ReadyChannel) error {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	n, err := unix.EpollWait(p.epfd, p.raw, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return err
	}
	for i := 0; i < n; i++ {
		fd := uintptr(p.raw[i].Fd)
		c, ok := p.channels[fd]
		if !ok {
			continue
		}
		raw := p.raw[i].Events
		var ev api.EventType
		if raw&unix.EPOLLIN != 0 {
			ev |= api.EventRead
		}
		if raw&unix.EPOLLOUT != 0 {
			ev |= api.EventWrite
		}
		if raw&unix.EPOLLERR != 0 {
			ev |= api.EventError
		}
		if raw&unix.EPOLLHUP != 0 {
			ev |= api.EventClose
		}
		*active = append(*active, ReadyChannel{Channel: c, Events: ev})
	}
	return nil
}

func (p *epollPoller) PostEvent(n uint64) error {
	return api.ErrNotSupported
}

func (p *epollPoller) ResetAfterFork() error {
	newFd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return err
	}
	old := p.epfd
	p.epfd = newFd
	for fd, c := range p.channels {
		ev := unix.EpollEvent{Events: interestToEpoll(c.Interest()), Fd: int32(fd)}
		if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, int(fd), &ev); err != nil {
			logger.ErrorFromErr(err)
		}
	}
	return unix.Close(old)
}

func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}
