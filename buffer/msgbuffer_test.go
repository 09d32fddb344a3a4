// File: buffer/msgbuffer_test.go
// Author: momentics <momentics@gmail.com>

package buffer

import "testing"

func TestAppendAndRetrieveRoundTrip(t *testing.T) {
	m := New()
	m.AppendString("hello world")
	if got := string(m.Peek()); got != "hello world" {
		t.Fatalf("Peek() = %q, want %q", got, "hello world")
	}
	m.Retrieve(6)
	if got := string(m.Peek()); got != "world" {
		t.Fatalf("Peek() after Retrieve = %q, want %q", got, "world")
	}
}

func TestRetrieveAllResetsCursorsAndShrinksAfterGrowth(t *testing.T) {
	m := NewSize(16, 8)
	big := make([]byte, 64)
	m.Append(big)
	if len(m.buf) <= 2*(16+8) {
		t.Fatalf("expected buffer to have grown past shrink threshold, len=%d", len(m.buf))
	}
	m.RetrieveAll()
	if m.ReadableBytes() != 0 {
		t.Fatalf("ReadableBytes() = %d, want 0", m.ReadableBytes())
	}
	if len(m.buf) != 16+8 {
		t.Fatalf("expected shrink back to initCap+prepend=%d, got %d", 16+8, len(m.buf))
	}
}

func TestEnsureWritableBytesCompactsInPlaceBeforeGrowing(t *testing.T) {
	m := NewSize(32, 8)
	m.Append(make([]byte, 20))
	m.Retrieve(10)
	before := len(m.buf)
	m.Append(make([]byte, 20))
	if len(m.buf) != before {
		t.Fatalf("expected in-place compaction, buffer grew from %d to %d", before, len(m.buf))
	}
	if m.WritableBytes() < 0 {
		t.Fatal("writable bytes went negative")
	}
}

func TestAddInFrontUsesPrependSpaceWhenAvailable(t *testing.T) {
	m := New()
	m.AppendString("body")
	before := len(m.buf)
	m.PrependInt32(42)
	if len(m.buf) != before {
		t.Fatalf("expected no reallocation when prepend space suffices, len went %d -> %d", before, len(m.buf))
	}
	if got := m.ReadInt32(); got != 42 {
		t.Fatalf("ReadInt32() = %d, want 42", got)
	}
	if got := string(m.Peek()); got != "body" {
		t.Fatalf("Peek() after prepend consume = %q, want %q", got, "body")
	}
}

func TestAddInFrontShiftsWithinCapacityWhenPrependExhausted(t *testing.T) {
	m := NewSize(64, 4)
	m.AppendString("payload")
	// Exhaust the 4-byte prepend zone with one 4-byte prepend.
	m.PrependInt32(1)
	// A second prepend larger than the (now zero) prepend space but
	// still fitting within existing writable capacity must shift the
	// readable region rightward rather than reallocate.
	beforeLen := len(m.buf)
	m.PrependInt64(2)
	if len(m.buf) != beforeLen {
		t.Fatalf("expected shift-in-place, buffer len changed %d -> %d", beforeLen, len(m.buf))
	}
	if got := m.ReadInt64(); got != 2 {
		t.Fatalf("ReadInt64() = %d, want 2", got)
	}
	if got := m.ReadInt32(); got != 1 {
		t.Fatalf("ReadInt32() = %d, want 1", got)
	}
	if got := string(m.Peek()); got != "payload" {
		t.Fatalf("Peek() = %q, want %q", got, "payload")
	}
}

func TestAddInFrontReallocatesWhenNoRoomRemains(t *testing.T) {
	m := NewSize(4, 2)
	m.AppendString("xy")
	header := make([]byte, 32)
	for i := range header {
		header[i] = byte(i)
	}
	m.addInFront(header)
	if got := m.Peek()[:len(header)]; string(got) != string(header) {
		t.Fatal("prepended header not found at front of readable region after reallocation")
	}
	m.Retrieve(len(header))
	if got := string(m.Peek()); got != "xy" {
		t.Fatalf("Peek() after consuming header = %q, want %q", got, "xy")
	}
}

func TestIntegerAccessorsRoundTripBigEndian(t *testing.T) {
	m := New()
	m.AppendInt8(0x7F)
	m.AppendInt16(0x1234)
	m.AppendInt32(0x89ABCDEF)
	m.AppendInt64(0x0102030405060708)

	if v := m.ReadInt8(); v != 0x7F {
		t.Fatalf("ReadInt8() = %#x, want %#x", v, 0x7F)
	}
	if v := m.ReadInt16(); v != 0x1234 {
		t.Fatalf("ReadInt16() = %#x, want %#x", v, 0x1234)
	}
	if v := m.ReadInt32(); v != 0x89ABCDEF {
		t.Fatalf("ReadInt32() = %#x, want %#x", v, 0x89ABCDEF)
	}
	if v := m.ReadInt64(); v != 0x0102030405060708 {
		t.Fatalf("ReadInt64() = %#x, want %#x", v, 0x0102030405060708)
	}
}

func TestFindCRLFLocatesDelimiterWithinReadableRegion(t *testing.T) {
	m := New()
	m.AppendString("GET / HTTP/1.1\r\nHost: x\r\n")
	off, ok := m.FindCRLF()
	if !ok {
		t.Fatal("expected to find CRLF")
	}
	if got := string(m.Peek()[:off]); got != "GET / HTTP/1.1" {
		t.Fatalf("first line = %q, want %q", got, "GET / HTTP/1.1")
	}
	m.RetrieveUntil(off + 2)
	off2, ok := m.FindCRLF()
	if !ok {
		t.Fatal("expected to find second CRLF")
	}
	if got := string(m.Peek()[:off2]); got != "Host: x" {
		t.Fatalf("second line = %q, want %q", got, "Host: x")
	}
}

func TestFindCRLFReportsNotFoundWithoutDelimiter(t *testing.T) {
	m := New()
	m.AppendString("no delimiter here")
	if _, ok := m.FindCRLF(); ok {
		t.Fatal("expected no CRLF to be found")
	}
}

func TestWritableSliceAndHasWrittenSupportDirectWrites(t *testing.T) {
	m := New()
	slice := m.WritableSlice()
	n := copy(slice, "direct")
	m.HasWritten(n)
	if got := string(m.Peek()); got != "direct" {
		t.Fatalf("Peek() = %q, want %q", got, "direct")
	}
}

func TestUnwriteRetractsLastWrittenBytes(t *testing.T) {
	m := New()
	m.AppendString("abcdef")
	m.Unwrite(3)
	if got := string(m.Peek()); got != "abc" {
		t.Fatalf("Peek() after Unwrite = %q, want %q", got, "abc")
	}
}
