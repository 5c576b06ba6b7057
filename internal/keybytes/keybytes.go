// Package keybytes produces the canonical CBOR encoding of a value.Value
// for exactly one purpose: comparing map keys by encoded-byte ordering
// (shorter first, then lexicographic). Both the decoder's canonical-order
// check and the encoder's canonical-mode sort use it, so the two
// components can never disagree about what "sorted" means.
package keybytes

import (
	"math"
	"math/big"

	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/value"
)

// Encode appends v's canonical CBOR encoding to dst and returns the result.
// It covers every variant that can legally appear as a map key; an
// unsupported variant (none are expected in well-formed input) is encoded
// best-effort rather than panicking, since ordering comparisons must never
// crash a decode/encode pass.
func Encode(dst []byte, v value.Value) []byte {
	switch tv := v.(type) {
	case value.Unsigned:
		return appendHead(dst, 0, tv.BigInt())
	case value.Negative:
		n := new(big.Int).Neg(tv.BigInt())
		n.Sub(n, big.NewInt(1))
		return appendHead(dst, 1, n)
	case value.Bytes:
		dst = appendHead(dst, 2, big.NewInt(int64(len(tv.V))))
		return append(dst, tv.V...)
	case value.Text:
		dst = appendHead(dst, 3, big.NewInt(int64(len(tv.V))))
		return append(dst, tv.V...)
	case value.Array:
		dst = appendHead(dst, 4, big.NewInt(int64(len(tv.Items))))
		for _, item := range tv.Items {
			dst = Encode(dst, item)
		}
		return dst
	case *value.Map:
		dst = appendHead(dst, 5, big.NewInt(int64(tv.Len())))
		for _, e := range tv.Entries {
			dst = Encode(dst, e.Key)
			dst = Encode(dst, e.Val)
		}
		return dst
	case value.Tag:
		dst = appendHead(dst, 6, new(big.Int).SetUint64(tv.Number))
		return Encode(dst, tv.Content)
	case value.Float:
		if bits, ok := primitive.Float64ToFloat16(tv.V); ok {
			dst = append(dst, (7<<5)|25)
			return primitive.WriteUint(dst, uint64(bits), 2)
		}
		if f32, ok := primitive.Float32ExactRoundTrip(tv.V); ok {
			dst = append(dst, (7<<5)|26)
			return primitive.WriteUint(dst, uint64(math.Float32bits(f32)), 4)
		}
		dst = append(dst, (7<<5)|27)
		return primitive.WriteUint(dst, math.Float64bits(tv.V), 8)
	case value.Simple:
		if tv.Code <= 23 {
			return append(dst, (7<<5)|byte(tv.Code))
		}
		return append(dst, (7<<5)|24, byte(tv.Code))
	default:
		return dst
	}
}

func appendHead(dst []byte, majorType uint8, n *big.Int) []byte {
	if n.IsUint64() {
		val := n.Uint64()
		ai := primitive.MinimalAdditionalInfo(val)
		dst = append(dst, (majorType<<5)|ai)

		w := primitive.ArgumentWidth(ai)
		if w > 0 {
			dst = primitive.WriteUint(dst, val, w)
		}

		return dst
	}

	// Only an Unsigned (major type 0) or Negative (major type 1) argument can
	// exceed 64 bits. It is written the way the encoder writes it: as a
	// tag-2 or tag-3 bignum wrapping the big-endian magnitude bytes.
	payload := n.Bytes()
	dst = append(dst, (6<<5)|(2+majorType))
	dst = appendHead(dst, 2, big.NewInt(int64(len(payload))))

	return append(dst, payload...)
}
