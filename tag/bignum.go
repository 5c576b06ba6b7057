package tag

import (
	"fmt"
	"math/big"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/value"
)

// DecodeBignum implements the RFC 8949 bignum rule: tags 2 and 3 carry a
// byte string whose contents are an unsigned big-endian integer n. Tag 2
// decodes to Unsigned(n); tag 3 decodes to Negative(-1-n). The Tag wrapper
// itself is not retained in the decoded tree — see value.Unsigned/Negative's
// FromBignumTag field for the metadata that lets the encoder reconstruct
// the wrapping byte-for-byte in non-canonical round-trip mode.
func DecodeBignum(tagNumber uint64, content value.Value, maxBignumBytes int) (value.Value, error) {
	bs, ok := content.(value.Bytes)
	if !ok {
		return nil, fmt.Errorf("%w: tag %d content must be a byte string", errs.ErrTagSemantics, tagNumber)
	}

	if maxBignumBytes > 0 && len(bs.V) > maxBignumBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit %d", errs.ErrBignumTooLarge, len(bs.V), maxBignumBytes)
	}

	n := new(big.Int).SetBytes(bs.V)

	switch tagNumber {
	case 2:
		u := value.Unsigned{FromBignumTag: true}
		if n.IsUint64() {
			u.V = n.Uint64()
		} else {
			u.Big = n
		}

		return u, nil
	case 3:
		// true value = -1 - n
		trueVal := new(big.Int).Neg(n)
		trueVal.Sub(trueVal, big.NewInt(1))

		neg := value.Negative{Big: trueVal, FromBignumTag: true}
		if trueVal.IsInt64() {
			neg.Int64 = trueVal.Int64()
			neg.Big = nil
		}

		return neg, nil
	default:
		return nil, fmt.Errorf("%w: tag %d is not a bignum tag", errs.ErrTagSemantics, tagNumber)
	}
}

// EncodeBignumPayload returns the unsigned big-endian byte-string payload
// for a bignum tag, given the value's true magnitude (for tag 3, the
// caller passes -1-value, i.e. n).
func EncodeBignumPayload(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{}
	}

	return n.Bytes()
}
