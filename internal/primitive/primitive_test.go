package primitive

import (
	"testing"

	"github.com/ada-tools/ccbor/errs"
	"github.com/stretchr/testify/require"
)

func TestReadUint(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	v, err := ReadUint(buf, 0, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(0x01), v)

	v, err = ReadUint(buf, 0, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102), v)

	v, err = ReadUint(buf, 0, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(0x01020304), v)

	v, err = ReadUint(buf, 0, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v)

	_, err = ReadUint(buf, 6, 4)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestWriteUintRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		var val uint64 = 0x0102030405060708
		dst := WriteUint(nil, val, n)
		require.Len(t, dst, n)

		got, err := ReadUint(dst, 0, n)
		require.NoError(t, err)

		want := val
		if n < 8 {
			want = val & ((uint64(1) << (8 * n)) - 1)
		}
		require.Equal(t, want, got)
	}
}

func TestCompareBytesShorterFirst(t *testing.T) {
	require.Negative(t, CompareBytes([]byte{0xFF}, []byte{0x00, 0x00}))
	require.Positive(t, CompareBytes([]byte{0x00, 0x00}, []byte{0xFF}))
	require.Zero(t, CompareBytes([]byte{1, 2, 3}, []byte{1, 2, 3}))
	require.Negative(t, CompareBytes([]byte{1, 2}, []byte{1, 3}))
}

func TestMinimalAdditionalInfo(t *testing.T) {
	cases := []struct {
		val uint64
		ai  uint8
	}{
		{0, 0}, {23, 23}, {24, 24}, {255, 24},
		{256, 25}, {65535, 25}, {65536, 26},
		{0xFFFFFFFF, 26}, {0x100000000, 27},
	}
	for _, c := range cases {
		require.Equal(t, c.ai, MinimalAdditionalInfo(c.val), "val=%d", c.val)
	}
}

func TestExtractHeader(t *testing.T) {
	mt, ai := ExtractHeader(0x64) // 011 00100
	require.Equal(t, uint8(3), mt)
	require.Equal(t, uint8(4), ai)
}

func TestValidateUTF8StrictRejectsOverlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of U+0000
	err := ValidateUTF8Strict([]byte{0xC0, 0x80})
	require.Error(t, err)
}

func TestValidateUTF8StrictRejectsSurrogate(t *testing.T) {
	// U+D800 encoded as 3-byte sequence: ED A0 80
	err := ValidateUTF8Strict([]byte{0xED, 0xA0, 0x80})
	require.Error(t, err)
}

func TestValidateUTF8StrictAcceptsValid(t *testing.T) {
	require.NoError(t, ValidateUTF8Strict([]byte("IETF")))
	require.NoError(t, ValidateUTF8Strict([]byte("ü"))) // u with umlaut, 2-byte
	require.NoError(t, ValidateUTF8Strict([]byte("水")))  // CJK, 3-byte
	require.NoError(t, ValidateUTF8Strict([]byte("\U0001F600"))) // emoji, 4-byte
}

func TestFloat16RoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 1.5, 100, -100, 65504} {
		bits, ok := Float64ToFloat16(f)
		require.True(t, ok, "f=%v", f)
		require.Equal(t, f, Float16ToFloat64(bits))
	}
}

func TestFloat16RejectsLossy(t *testing.T) {
	_, ok := Float64ToFloat16(100000.5)
	require.False(t, ok)
}
