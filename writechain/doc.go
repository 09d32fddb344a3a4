// File: writechain/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package writechain implements the four outgoing buffer node kinds
// (C5b): memory, stream-callback, async-stream, and file-region, plus
// Chain, the ordered write queue that consumes them. A writer pulls
// GetData from the head node, writes as many bytes as the transport
// accepts, retires them with Retrieve(n), and drops the head once
// RemainingBytes()==0 and Done() — letting one interface express user-supplied
// bytes, pull-based stream generation, push-based async streams, and
// zero-copy file transmission, grounded on pool/batch.go's
// accumulate/reset/get-underlying shape for the container itself.
package writechain

import (
	"github.com/momentics/reactorcore/api"
	"github.com/momentics/reactorcore/pool"
)

// StreamChunkSize is the fixed amount a stream-callback node pulls from
// its callback when it runs dry.
const StreamChunkSize = 16 * 1024

// defaultBytePool backs every StreamNode/FileNode constructed without
// an explicit pool, so ordinary callers get staging-buffer reuse for
// free without threading a pool through every call site.
var defaultBytePool api.BytePool = pool.NewBytePool()
