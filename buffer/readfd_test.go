// File: buffer/readfd_test.go
// Author: momentics <momentics@gmail.com>

package buffer

import (
	"os"
	"testing"
)

func TestReadFromDescriptorIngestsPipeData(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()

	payload := []byte("data arriving off the wire")
	go func() {
		w.Write(payload)
		w.Close()
	}()

	m := New()
	n, err := m.ReadFromDescriptor(r.Fd())
	if err != nil {
		t.Fatalf("ReadFromDescriptor: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("ReadFromDescriptor returned n=%d, want %d", n, len(payload))
	}
	if got := string(m.Peek()); got != string(payload) {
		t.Fatalf("Peek() = %q, want %q", got, string(payload))
	}
}
