//go:build linux

// File: buffer/readfd_linux.go
// Author: momentics <momentics@gmail.com>
//
// Scatter read via readv(2): the primary write-tail buffer plus an
// on-stack ~8 KiB overflow, so a single system call can ingest more
// than the buffer's current capacity without pre-growing — ported
// directly from original_source/trantor/net/MsgBuffer.cc's readFd.

package buffer

import "golang.org/x/sys/unix"

const overflowSize = 8192

// ReadFromDescriptor performs one readv(2) into (writable tail,
// on-stack overflow buffer). If the overflow region was used, those
// bytes are appended, growing the buffer exactly once if required.
func (m *MsgBuffer) ReadFromDescriptor(fd uintptr) (int, error) {
	var overflow [overflowSize]byte
	writable := m.WritableBytes()

	iov := make([][]byte, 0, 2)
	if writable > 0 {
		iov = append(iov, m.buf[m.tail:m.tail+writable])
	}
	if writable < overflowSize {
		iov = append(iov, overflow[:])
	}

	n, err := unix.Readv(int(fd), iov)
	if err != nil {
		return 0, err
	}
	switch {
	case n <= writable:
		m.tail += n
	default:
		m.tail = len(m.buf)
		m.Append(overflow[:n-writable])
	}
	return n, nil
}
