// File: buffer/msgbuffer.go
// Author: momentics <momentics@gmail.com>
//
// MsgBuffer's platform-neutral operations, ported from the algorithm in
// original_source/trantor/net/MsgBuffer.cc: ensureWritableBytes's
// compact-or-grow discipline, retrieveAll's shrink-back-toward-initial
// behavior, addInFront's three-branch placement, and the integer
// accessors' network-byte-order convention (encoding/binary.BigEndian
// here in place of ntohs/ntohl/htons/htonl — no ecosystem library in
// the retrieval pack offers a narrower fit for four fixed-width
// byte-order conversions than the standard library already is).

package buffer

import "encoding/binary"

// MsgBuffer is a byte vector with a read cursor (head) and a write
// cursor (tail), plus a reserved prepend zone at the front so framing
// headers can be written without reallocating when head has not yet
// advanced past it.
type MsgBuffer struct {
	buf      []byte
	head     int
	tail     int
	prepend  int
	initCap  int
}

// New constructs a MsgBuffer with the default initial capacity and
// prepend zone.
func New() *MsgBuffer {
	return NewSize(DefaultInitialSize, DefaultPrependSize)
}

// NewSize constructs a MsgBuffer with an explicit initial capacity and
// prepend zone size.
func NewSize(initCap, prepend int) *MsgBuffer {
	if initCap < prepend {
		initCap = prepend
	}
	return &MsgBuffer{
		buf:     make([]byte, initCap+prepend),
		head:    prepend,
		tail:    prepend,
		prepend: prepend,
		initCap: initCap,
	}
}

// ReadableBytes reports how many unread bytes are available.
func (m *MsgBuffer) ReadableBytes() int { return m.tail - m.head }

// WritableBytes reports how much tail space remains before a grow or
// compaction is required.
func (m *MsgBuffer) WritableBytes() int { return len(m.buf) - m.tail }

// PrependableBytes reports how much of the reserved header zone is
// still unused (i.e. how much addInFront can place without shifting
// the readable region).
func (m *MsgBuffer) PrependableBytes() int { return m.head }

// Peek returns the readable region without consuming it. The returned
// slice aliases the buffer and is invalidated by any mutating call.
func (m *MsgBuffer) Peek() []byte { return m.buf[m.head:m.tail] }

// Retrieve discards len bytes from the front of the readable region.
func (m *MsgBuffer) Retrieve(n int) {
	if n >= m.ReadableBytes() {
		m.RetrieveAll()
		return
	}
	m.head += n
}

// RetrieveAll discards the entire readable region and resets both
// cursors to the prepend offset. If the buffer has grown past twice
// its initial capacity, it shrinks back to initCap+prepend.
func (m *MsgBuffer) RetrieveAll() {
	if len(m.buf) > 2*(m.initCap+m.prepend) {
		m.buf = make([]byte, m.initCap+m.prepend)
	}
	m.head = m.prepend
	m.tail = m.prepend
}

// Read consumes and returns up to n bytes from the readable region, as
// a freshly allocated copy (the caller does not need to worry about
// the MsgBuffer's internal buffer being reused out from under it).
func (m *MsgBuffer) Read(n int) []byte {
	if n > m.ReadableBytes() {
		n = m.ReadableBytes()
	}
	out := make([]byte, n)
	copy(out, m.buf[m.head:m.head+n])
	m.Retrieve(n)
	return out
}

// ensureWritableBytes guarantees WritableBytes() >= n, compacting the
// readable region forward into the prepend-sized gap in place when
// that alone suffices, otherwise allocating a new, larger buffer.
func (m *MsgBuffer) ensureWritableBytes(n int) {
	if m.WritableBytes() >= n {
		return
	}
	if m.head+m.WritableBytes() >= n+m.prepend {
		readable := m.ReadableBytes()
		copy(m.buf[m.prepend:], m.buf[m.head:m.tail])
		m.head = m.prepend
		m.tail = m.prepend + readable
		return
	}
	newLen := len(m.buf) * 2
	if need := m.prepend + m.ReadableBytes() + n; newLen < need {
		newLen = need
	}
	nb := make([]byte, newLen)
	readable := m.ReadableBytes()
	copy(nb[m.prepend:], m.buf[m.head:m.tail])
	m.buf = nb
	m.head = m.prepend
	m.tail = m.prepend + readable
}

// Append appends buf to the writable end, growing or compacting first
// if necessary.
func (m *MsgBuffer) Append(buf []byte) {
	m.ensureWritableBytes(len(buf))
	copy(m.buf[m.tail:], buf)
	m.tail += len(buf)
}

// AppendString appends s to the writable end.
func (m *MsgBuffer) AppendString(s string) { m.Append([]byte(s)) }

// HasWritten advances the write cursor by n, for callers that wrote
// directly into the slice returned by WritableSlice.
func (m *MsgBuffer) HasWritten(n int) {
	if n > m.WritableBytes() {
		panic("buffer: HasWritten exceeds writable bytes")
	}
	m.tail += n
}

// WritableSlice exposes the raw tail region for in-place writes (e.g.
// a descriptor read), paired with a subsequent HasWritten call.
func (m *MsgBuffer) WritableSlice() []byte { return m.buf[m.tail:] }

// Unwrite retracts the write cursor by n, discarding the last n
// written-but-unread bytes.
func (m *MsgBuffer) Unwrite(n int) {
	if n > m.ReadableBytes() {
		panic("buffer: Unwrite exceeds readable bytes")
	}
	m.tail -= n
}

// addInFront places buf immediately before the current readable
// region: in the unused prepend space if it fits, else by shifting the
// readable region rightward within existing capacity, else by
// reallocating.
func (m *MsgBuffer) addInFront(buf []byte) {
	n := len(buf)
	if m.head >= n {
		copy(m.buf[m.head-n:m.head], buf)
		m.head -= n
		return
	}
	if n <= m.WritableBytes() {
		copy(m.buf[m.head+n:m.tail+n], m.buf[m.head:m.tail])
		copy(m.buf[m.head:], buf)
		m.tail += n
		return
	}
	readable := m.ReadableBytes()
	newLen := m.initCap + m.prepend
	if need := n + readable + m.prepend; newLen < need {
		newLen = need
	}
	nb := make([]byte, newLen)
	copy(nb[m.prepend:], buf)
	copy(nb[m.prepend+n:], m.buf[m.head:m.tail])
	m.buf = nb
	m.head = m.prepend
	m.tail = m.prepend + n + readable
}

func (m *MsgBuffer) requireReadable(n int) {
	if m.ReadableBytes() < n {
		panic("buffer: not enough readable bytes")
	}
}

// PeekInt8 returns the first byte without consuming it.
func (m *MsgBuffer) PeekInt8() uint8 {
	m.requireReadable(1)
	return m.buf[m.head]
}

// PeekInt16 returns the first two bytes, network byte order, without
// consuming them.
func (m *MsgBuffer) PeekInt16() uint16 {
	m.requireReadable(2)
	return binary.BigEndian.Uint16(m.buf[m.head:])
}

// PeekInt32 returns the first four bytes, network byte order, without
// consuming them.
func (m *MsgBuffer) PeekInt32() uint32 {
	m.requireReadable(4)
	return binary.BigEndian.Uint32(m.buf[m.head:])
}

// PeekInt64 returns the first eight bytes, network byte order, without
// consuming them.
func (m *MsgBuffer) PeekInt64() uint64 {
	m.requireReadable(8)
	return binary.BigEndian.Uint64(m.buf[m.head:])
}

// ReadInt8 consumes and returns the first byte.
func (m *MsgBuffer) ReadInt8() uint8 {
	v := m.PeekInt8()
	m.Retrieve(1)
	return v
}

// ReadInt16 consumes and returns the first two bytes.
func (m *MsgBuffer) ReadInt16() uint16 {
	v := m.PeekInt16()
	m.Retrieve(2)
	return v
}

// ReadInt32 consumes and returns the first four bytes.
func (m *MsgBuffer) ReadInt32() uint32 {
	v := m.PeekInt32()
	m.Retrieve(4)
	return v
}

// ReadInt64 consumes and returns the first eight bytes.
func (m *MsgBuffer) ReadInt64() uint64 {
	v := m.PeekInt64()
	m.Retrieve(8)
	return v
}

// PrependInt8 places b immediately before the readable region.
func (m *MsgBuffer) PrependInt8(b uint8) { m.addInFront([]byte{b}) }

// PrependInt16 places s, network byte order, immediately before the
// readable region.
func (m *MsgBuffer) PrependInt16(s uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], s)
	m.addInFront(b[:])
}

// PrependInt32 places i, network byte order, immediately before the
// readable region.
func (m *MsgBuffer) PrependInt32(i uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i)
	m.addInFront(b[:])
}

// PrependInt64 places l, network byte order, immediately before the
// readable region.
func (m *MsgBuffer) PrependInt64(l uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], l)
	m.addInFront(b[:])
}

// AppendInt8 appends b to the writable end.
func (m *MsgBuffer) AppendInt8(b uint8) { m.Append([]byte{b}) }

// AppendInt16 appends s, network byte order, to the writable end.
func (m *MsgBuffer) AppendInt16(s uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], s)
	m.Append(b[:])
}

// AppendInt32 appends i, network byte order, to the writable end.
func (m *MsgBuffer) AppendInt32(i uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i)
	m.Append(b[:])
}

// AppendInt64 appends l, network byte order, to the writable end.
func (m *MsgBuffer) AppendInt64(l uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], l)
	m.Append(b[:])
}

// FindCRLF returns the offset of the first "\r\n" within the readable
// region, relative to the start of that region, and whether one was
// found.
func (m *MsgBuffer) FindCRLF() (int, bool) {
	readable := m.Peek()
	for i := 0; i+1 < len(readable); i++ {
		if readable[i] == '\r' && readable[i+1] == '\n' {
			return i, true
		}
	}
	return 0, false
}

// RetrieveUntil discards bytes from the front of the readable region
// up to (not including) the given offset, as returned by FindCRLF or
// similar scans.
func (m *MsgBuffer) RetrieveUntil(offset int) { m.Retrieve(offset) }
