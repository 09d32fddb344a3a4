// File: writechain/file_node.go
// Author: momentics <momentics@gmail.com>
//
// FileNode holds an offset+length region of an open file. A transport
// with a sendfile-style primitive may bypass GetData entirely, reading
// File() and FileOffset() directly and advancing the node purely via
// Retrieve; a transport without one falls back to GetData's small
// internal staging buffer, filled via ReadAt so the node never disturbs
// the file's shared read cursor.

package writechain

import (
	"os"

	"github.com/momentics/reactorcore/api"
)

const fileStageSize = 16 * 1024

// FileNode represents [offset, offset+length) of file as a node.
type FileNode struct {
	file   *os.File
	offset int64
	length int64
	sent   int64

	pool     api.BytePool
	staging  []byte
	stageOff int
	closed   bool
}

// NewFileNode constructs a node over f spanning length bytes starting
// at offset. The caller retains ownership of f and must close it only
// after the node reports Done.
func NewFileNode(f *os.File, offset, length int64) *FileNode {
	return NewFileNodeWithPool(f, offset, length, defaultBytePool)
}

// NewFileNodeWithPool is NewFileNode with an explicit staging pool.
func NewFileNodeWithPool(f *os.File, offset, length int64, bp api.BytePool) *FileNode {
	return &FileNode{file: f, offset: offset, length: length, pool: bp}
}

// File exposes the underlying file, for transports that bypass GetData
// with a platform sendfile call.
func (n *FileNode) File() *os.File { return n.file }

// FileOffset reports the absolute file offset of the next unsent byte.
func (n *FileNode) FileOffset() int64 { return n.offset + n.sent }

func (n *FileNode) refill() {
	remaining := n.length - n.sent - int64(len(n.staging)-n.stageOff)
	if n.stageOff < len(n.staging) || remaining <= 0 {
		return
	}
	if n.staging != nil {
		n.pool.Release(n.staging)
		n.staging = nil
	}
	chunk := int64(fileStageSize)
	if chunk > remaining {
		chunk = remaining
	}
	buf := n.pool.Acquire(int(chunk))
	got, err := n.file.ReadAt(buf, n.FileOffset()+int64(len(n.staging)-n.stageOff))
	if got <= 0 || err != nil {
		n.pool.Release(buf)
		n.staging = nil
		n.stageOff = 0
		return
	}
	n.staging = buf[:got]
	n.stageOff = 0
}

// closeNode releases any staged buffer back to the pool. Called by
// Chain when the node is dropped, even if it never reached Done via
// Retrieve (e.g. the chain was Reset early).
func (n *FileNode) closeNode() {
	if n.closed {
		return
	}
	n.closed = true
	if n.staging != nil {
		n.pool.Release(n.staging)
		n.staging = nil
	}
}

func (n *FileNode) GetData() []byte {
	n.refill()
	return n.staging[n.stageOff:]
}

func (n *FileNode) Retrieve(sent int) {
	n.sent += int64(sent)
	n.stageOff += sent
	if n.stageOff > len(n.staging) {
		n.stageOff = len(n.staging)
	}
	if n.sent > n.length {
		n.sent = n.length
	}
}

func (n *FileNode) RemainingBytes() int { return int(n.length - n.sent) }

func (n *FileNode) IsFile() bool   { return true }
func (n *FileNode) IsStream() bool { return false }
func (n *FileNode) IsAsync() bool  { return false }

func (n *FileNode) Done() bool { return n.sent >= n.length }
