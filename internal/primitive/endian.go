// Package primitive provides the byte-level building blocks the decoder and
// encoder share: big-endian integer read/write, hex conversion, strict
// UTF-8 validation, canonical-form checks, and half-precision float
// conversion.
//
// Unlike a general-purpose endian.EndianEngine supporting either byte
// order, RFC 8949 fixes CBOR arguments to big-endian unconditionally, so
// this package exposes only that one direction.
package primitive

import (
	"encoding/binary"

	"github.com/ada-tools/ccbor/errs"
)

// ReadUint reads an n-byte (n in 1,2,4,8) big-endian unsigned integer from
// buf starting at off. It fails with errs.ErrOutOfBounds when off+n exceeds
// len(buf).
func ReadUint(buf []byte, off, n int) (uint64, error) {
	if off < 0 || n < 0 || off+n > len(buf) {
		return 0, errs.ErrOutOfBounds
	}

	switch n {
	case 1:
		return uint64(buf[off]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(buf[off : off+2])), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(buf[off : off+4])), nil
	case 8:
		return binary.BigEndian.Uint64(buf[off : off+8]), nil
	default:
		return ReadBigUint(buf, off, n)
	}
}

// ReadBigUint reads an arbitrary-width (including widths outside
// {1,2,4,8}) big-endian unsigned integer from buf[off:off+n] and returns it
// as a uint64. Callers needing true arbitrary precision (bignum tags) work
// directly on the byte slice instead; this helper exists for primitives
// tests and for widths that still fit in 64 bits.
func ReadBigUint(buf []byte, off, n int) (uint64, error) {
	if off < 0 || n < 0 || off+n > len(buf) {
		return 0, errs.ErrOutOfBounds
	}

	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(buf[off+i])
	}

	return v, nil
}

// WriteUint appends the n-byte (n in 1,2,4,8) big-endian encoding of val to
// dst and returns the extended slice.
func WriteUint(dst []byte, val uint64, n int) []byte {
	switch n {
	case 1:
		return append(dst, byte(val))
	case 2:
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(val))
		return append(dst, tmp[:]...)
	case 4:
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(val))
		return append(dst, tmp[:]...)
	case 8:
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], val)
		return append(dst, tmp[:]...)
	default:
		return WriteBigUint(dst, val, n)
	}
}

// WriteBigUint appends the n-byte big-endian encoding of val to dst for
// arbitrary n, zero-padding on the left.
func WriteBigUint(dst []byte, val uint64, n int) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	for i := n - 1; i >= 0; i-- {
		dst[start+i] = byte(val)
		val >>= 8
	}

	return dst
}
