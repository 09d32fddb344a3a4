// File: writechain/chain_test.go
// Author: momentics <momentics@gmail.com>

package writechain

import (
	"os"
	"testing"
)

func TestMemoryNodeDrainsAndReportsDone(t *testing.T) {
	n := NewMemoryNode([]byte("hello"))
	if n.Done() {
		t.Fatal("fresh memory node must not be done")
	}
	if got := string(n.GetData()); got != "hello" {
		t.Fatalf("GetData() = %q, want %q", got, "hello")
	}
	n.Retrieve(3)
	if got := string(n.GetData()); got != "lo" {
		t.Fatalf("GetData() after partial retrieve = %q, want %q", got, "lo")
	}
	n.Retrieve(2)
	if n.RemainingBytes() != 0 {
		t.Fatalf("RemainingBytes() = %d, want 0", n.RemainingBytes())
	}
	if !n.Done() {
		t.Fatal("expected memory node to be done once fully retrieved")
	}
}

func TestChainPullsFromHeadAndDropsWhenExhausted(t *testing.T) {
	c := NewChain(2)
	c.Push(NewMemoryNode([]byte("abc")))
	c.Push(NewMemoryNode([]byte("defg")))

	if got := string(c.Pull()); got != "abc" {
		t.Fatalf("Pull() = %q, want %q", got, "abc")
	}
	if dropped := c.Advance(3); dropped != 1 {
		t.Fatalf("Advance() dropped = %d, want 1", dropped)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if got := string(c.Pull()); got != "defg" {
		t.Fatalf("Pull() after drop = %q, want %q", got, "defg")
	}
	if dropped := c.Advance(4); dropped != 1 {
		t.Fatalf("Advance() dropped = %d, want 1", dropped)
	}
	if !c.Empty() {
		t.Fatal("expected chain to be empty after draining both nodes")
	}
}

func TestChainAdvanceSpansMultipleNodesInOneCall(t *testing.T) {
	c := NewChain(2)
	c.Push(NewMemoryNode([]byte("ab")))
	c.Push(NewMemoryNode([]byte("cdef")))

	dropped := c.Advance(3)
	if dropped != 1 {
		t.Fatalf("Advance() dropped = %d, want 1 (second node not fully consumed)", dropped)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if got := string(c.Pull()); got != "def" {
		t.Fatalf("Pull() = %q, want %q", got, "def")
	}
}

func TestStreamNodePullsChunksUntilCallbackSignalsEnd(t *testing.T) {
	parts := [][]byte{[]byte("first-"), []byte("second"), nil}
	call := 0
	cleanupCalled := false
	pull := func(dst []byte) int {
		if dst == nil {
			cleanupCalled = true
			return 0
		}
		if call >= len(parts) || parts[call] == nil {
			return 0
		}
		n := copy(dst, parts[call])
		call++
		return n
	}

	n := NewStreamNode(pull)
	var out []byte
	for !n.Done() {
		chunk := n.GetData()
		if len(chunk) == 0 {
			break
		}
		out = append(out, chunk...)
		n.Retrieve(len(chunk))
	}
	if got := string(out); got != "first-second" {
		t.Fatalf("accumulated stream output = %q, want %q", got, "first-second")
	}
	if !n.Done() {
		t.Fatal("expected stream node to be done after callback returns 0")
	}

	c := NewChain(1)
	c.Push(n)
	c.Reset()
	if !cleanupCalled {
		t.Fatal("expected closeNode cleanup pull with nil sink on drop")
	}
}

func TestAsyncStreamNodeAppendFromAnotherGoroutine(t *testing.T) {
	n := NewAsyncStreamNode()
	done := make(chan struct{})
	go func() {
		n.Append([]byte("chunk-one"))
		n.Append([]byte("-chunk-two"))
		n.MarkDone()
		close(done)
	}()
	<-done

	if !n.IsAsync() {
		t.Fatal("expected IsAsync() true")
	}
	got := string(n.GetData())
	if got != "chunk-one-chunk-two" {
		t.Fatalf("GetData() = %q, want %q", got, "chunk-one-chunk-two")
	}
	n.Retrieve(len(got))
	if !n.Done() {
		t.Fatal("expected node done after MarkDone and full retrieval")
	}
}

func TestAsyncStreamNodeNotDoneWhileDrainedButProducerStillOpen(t *testing.T) {
	n := NewAsyncStreamNode()
	n.Append([]byte("x"))
	n.Retrieve(1)
	if n.RemainingBytes() != 0 {
		t.Fatalf("RemainingBytes() = %d, want 0", n.RemainingBytes())
	}
	if n.Done() {
		t.Fatal("node must not report Done before producer calls MarkDone")
	}
}

func TestFileNodeStagesReadsFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "writechain-filenode")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	content := []byte("0123456789abcdef")
	if _, err := f.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}

	n := NewFileNode(f, 3, 5) // "34567"
	if !n.IsFile() {
		t.Fatal("expected IsFile() true")
	}
	var out []byte
	for !n.Done() {
		chunk := n.GetData()
		if len(chunk) == 0 {
			break
		}
		out = append(out, chunk...)
		n.Retrieve(len(chunk))
	}
	if got := string(out); got != "34567" {
		t.Fatalf("file node output = %q, want %q", got, "34567")
	}
	if n.RemainingBytes() != 0 {
		t.Fatalf("RemainingBytes() = %d, want 0", n.RemainingBytes())
	}
}

func TestChainReapDropsDoneNodesWithoutExplicitAdvance(t *testing.T) {
	n := NewAsyncStreamNode()
	n.MarkDone()
	c := NewChain(1)
	c.Push(n)
	if dropped := c.Reap(); dropped != 1 {
		t.Fatalf("Reap() dropped = %d, want 1", dropped)
	}
	if !c.Empty() {
		t.Fatal("expected chain empty after reaping a done, drained node")
	}
}
