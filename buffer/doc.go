// File: buffer/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package buffer implements MsgBuffer (C5a): a contiguous byte vector
// with a reserved prepend zone, used to accumulate bytes read off a
// descriptor and to frame outgoing messages without a second
// allocation for headers. Not safe for concurrent use; a MsgBuffer is
// confined to the single connection/loop that owns it, in the spirit
// of pool/batch.go's "designed for single-goroutine use" convention.
package buffer

// DefaultInitialSize is the writable capacity New gives a MsgBuffer.
const DefaultInitialSize = 2048

// DefaultPrependSize is the reserved header zone at the front of a
// freshly constructed MsgBuffer.
const DefaultPrependSize = 8
