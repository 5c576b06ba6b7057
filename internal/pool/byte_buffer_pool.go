// Package pool provides a reusable growable byte buffer for the encoder's
// recursive output writes, avoiding a fresh allocation per Encode call.
package pool

import (
	"io"
	"sync"
)

// Default and max-retained sizes for pooled encode buffers. CBOR items are
// usually small (a handful of bytes to a few KiB); OutputMaxThreshold
// exists only to stop a single oversized encode (e.g. a multi-megabyte
// byte string) from permanently growing the pool's steady-state footprint.
const (
	OutputDefaultSize  = 1024 * 4   // 4KiB
	OutputMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a growable byte buffer with pool-friendly Reset/Grow
// semantics.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default
// capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes written so far.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the buffer's current capacity.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Write appends data to the buffer, growing it as needed. It always
// returns len(data), nil, satisfying io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the buffer's contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// BufferPool is a sync.Pool of ByteBuffers, discarding buffers that grew
// past maxThreshold rather than retaining them indefinitely.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a BufferPool whose buffers start at defaultSize and
// are discarded (not returned to the pool) once they exceed maxThreshold.
func NewBufferPool(defaultSize, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *BufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse, unless it grew past the
// pool's max threshold.
func (p *BufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var defaultOutputPool = NewBufferPool(OutputDefaultSize, OutputMaxThreshold)

// GetOutputBuffer retrieves a ByteBuffer from the package-default encoder
// output pool.
func GetOutputBuffer() *ByteBuffer { return defaultOutputPool.Get() }

// PutOutputBuffer returns a ByteBuffer to the package-default encoder
// output pool.
func PutOutputBuffer(bb *ByteBuffer) { defaultOutputPool.Put(bb) }
