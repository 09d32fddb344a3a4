//go:build !linux && !windows

// File: loop/waker_other.go
// Author: momentics <momentics@gmail.com>
//
// Self-pipe waker: option (b) of spec.md section 4.4's wake-up
// protocol, for platforms with neither eventfd nor IOCP.

package loop

import (
	"os"

	"github.com/momentics/reactorcore/api"
)

type pipeWaker struct {
	r *os.File
	w *os.File
}

func newWaker(pollerPoster) (waker, api.Channel, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	pw := &pipeWaker{r: r, w: w}
	return pw, pw, nil
}

func (p *pipeWaker) signal() error {
	_, err := p.w.Write([]byte{1})
	return err
}

func (p *pipeWaker) close() error {
	_ = p.r.Close()
	return p.w.Close()
}

func (p *pipeWaker) FD() uintptr              { return p.r.Fd() }
func (p *pipeWaker) Interest() api.InterestMask { return api.InterestRead }
func (p *pipeWaker) HandleRead() {
	var buf [64]byte
	for {
		n, err := p.r.Read(buf[:])
		if n == 0 || err != nil {
			return
		}
	}
}
func (p *pipeWaker) HandleWrite() {}
func (p *pipeWaker) HandleError() {}
func (p *pipeWaker) HandleClose() {}
