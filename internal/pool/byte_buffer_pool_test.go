package pool_test

import (
	"testing"

	"github.com/ada-tools/ccbor/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := pool.NewByteBuffer(4)
	n, err := bb.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 3)
}

func TestBufferPoolDiscardsOversizedBuffers(t *testing.T) {
	p := pool.NewBufferPool(4, 8)
	bb := p.Get()
	bb.B = make([]byte, 0, 16)
	p.Put(bb) // should be discarded, not pooled, since cap > maxThreshold

	bb2 := p.Get()
	require.Less(t, bb2.Cap(), 16)
}
