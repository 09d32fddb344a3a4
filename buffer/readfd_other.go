//go:build !linux

// File: buffer/readfd_other.go
// Author: momentics <momentics@gmail.com>
//
// Portable emulation of readv(2) via two ordinary reads: one into the
// writable tail, one into an on-stack overflow buffer if the first call
// fills the tail completely. Ported from the same discipline as
// readfd_linux.go but without scatter-gather: the overflow call only
// happens when the first one reports a full fill, and its result is a
// second independent syscall rather than a single atomic scatter read.
// Preserve the observed semantics of the two-call emulation rather than
// "fixing" it towards single-syscall behavior: if the first call does
// not fill the tail exactly full, the overflow call never happens, even
// though more data might be waiting on the descriptor.

package buffer

import "syscall"

const overflowSize = 8192

// ReadFromDescriptor reads from fd into the writable tail; if that read
// fills the tail exactly full, a second read into a bounded overflow
// buffer is attempted and appended. The result never exceeds what the
// first call plus one bounded second call could deliver, even on
// platforms where a single recv could have returned more.
func (m *MsgBuffer) ReadFromDescriptor(fd uintptr) (int, error) {
	writable := m.WritableBytes()
	if writable == 0 {
		m.ensureWritableBytes(overflowSize)
		writable = m.WritableBytes()
	}

	n1, err := syscall.Read(int(fd), m.buf[m.tail:m.tail+writable])
	if err != nil {
		return 0, err
	}
	m.tail += n1
	if n1 < writable || n1 == 0 {
		return n1, nil
	}

	var overflow [overflowSize]byte
	n2, err := syscall.Read(int(fd), overflow[:])
	if err != nil {
		// The primary read already succeeded; report what we have and
		// let the next call surface the overflow error, if it recurs.
		return n1, nil
	}
	if n2 > 0 {
		m.Append(overflow[:n2])
	}
	return n1 + n2, nil
}
