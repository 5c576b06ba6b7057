// Package keyset provides the hash-accelerated structural equality used by
// decode-time validators that must tell apart many CBOR keys or set
// elements efficiently: dup_map_key detection (a seen set whose
// discrimination is the deep structural identity of the key) and tag-258
// Set-uniqueness.
//
// It follows an xxhash-based ID plus hash-collision-tracking shape: a
// metric name would hash to a 64-bit ID with a Tracker resolving
// collisions between different names sharing a hash; here, a CBOR value
// hashes to a 64-bit fingerprint and a bucket resolves collisions between
// structurally different values sharing a fingerprint.
package keyset

import (
	"math"

	"github.com/ada-tools/ccbor/value"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit hash of v's structural identity: two values
// that are Equal always have the same Fingerprint, but (as with any hash)
// two different values may collide — callers must still confirm with Equal
// before treating a fingerprint match as identity.
func Fingerprint(v value.Value) uint64 {
	var buf []byte
	buf = appendFingerprint(buf, v)

	return xxhash.Sum64(buf)
}

func appendFingerprint(buf []byte, v value.Value) []byte {
	if v == nil {
		return append(buf, 0xFF)
	}

	buf = append(buf, byte(v.MajorType()))

	switch tv := v.(type) {
	case value.Unsigned:
		return append(buf, tv.BigInt().Bytes()...)
	case value.Negative:
		b := tv.BigInt()
		return append(buf, b.Bytes()...)
	case value.Bytes:
		return append(buf, tv.V...)
	case value.Text:
		return append(buf, tv.V...)
	case value.Array:
		for _, item := range tv.Items {
			buf = appendFingerprint(buf, item)
		}
		return buf
	case *value.Map:
		for _, e := range tv.Entries {
			buf = appendFingerprint(buf, e.Key)
			buf = appendFingerprint(buf, e.Val)
		}
		return buf
	case value.Tag:
		buf = appendUvarint(buf, tv.Number)
		return appendFingerprint(buf, tv.Content)
	case value.Float:
		f := tv.V
		if f == 0 {
			f = 0 // +0 and -0 are Equal, so they must hash alike
		}
		return appendUvarint(buf, math.Float64bits(f))
	case value.Simple:
		return append(buf, byte(tv.Code))
	default:
		return buf
	}
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [8]byte
	for i := 7; i >= 0; i-- {
		tmp[i] = byte(v)
		v >>= 8
	}

	return append(buf, tmp[:]...)
}
