package pool

import (
	"sync"
)

// Default sizes of the reader buffers obtained from the pools.
const (
	LineBufferDefaultSize      = 1024 * 4         // 4KiB, one FASTA/FASTQ line
	LineBufferMaxThreshold     = 1024 * 1024      // 1MiB
	SequenceBufferDefaultSize  = 1024 * 64        // 64KiB, one accumulated FASTA sequence
	SequenceBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable byte arena that is reset, not reallocated,
// between records.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice. The slice is only valid until the
// next Reset or write.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Clone returns an owned copy of the buffer contents. An empty buffer
// yields an empty, non-nil slice.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// Reset empties the buffer but retains the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by LineBufferDefaultSize; buffers above 16x that grow by
// 25% of their capacity so long FASTA sequences are not copied on every line.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := LineBufferDefaultSize
	if cap(bb.B) > 16*LineBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers that grew beyond
// maxThreshold are dropped instead of pooled, so one huge record does not pin
// its memory for the life of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	lineDefaultPool     = NewByteBufferPool(LineBufferDefaultSize, LineBufferMaxThreshold)
	sequenceDefaultPool = NewByteBufferPool(SequenceBufferDefaultSize, SequenceBufferMaxThreshold)
)

// GetLineBuffer retrieves a buffer sized for single lines.
func GetLineBuffer() *ByteBuffer {
	return lineDefaultPool.Get()
}

// PutLineBuffer returns a line buffer to the pool.
func PutLineBuffer(bb *ByteBuffer) {
	lineDefaultPool.Put(bb)
}

// GetSequenceBuffer retrieves a buffer sized for accumulated sequences.
func GetSequenceBuffer() *ByteBuffer {
	return sequenceDefaultPool.Get()
}

// PutSequenceBuffer returns a sequence buffer to the pool.
func PutSequenceBuffer(bb *ByteBuffer) {
	sequenceDefaultPool.Put(bb)
}
