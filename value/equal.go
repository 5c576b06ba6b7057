package value

import "bytes"

// equalValue is a package-private deep structural comparison used only by
// Map.Get/NewMap to tell apart CBOR keys of different major types that
// might render identically as strings (integer 1 vs text "1", true vs 1,
// a byte string vs a text string with the same bytes). It is intentionally
// unexported: the core does not expose a public value-equality API. The
// hash-accelerated equivalent used by decode-time validators lives in
// internal/keyset.
func equalValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.MajorType() != b.MajorType() {
		return false
	}

	switch av := a.(type) {
	case Unsigned:
		bv, ok := b.(Unsigned)
		return ok && av.BigInt().Cmp(bv.BigInt()) == 0
	case Negative:
		bv, ok := b.(Negative)
		return ok && av.BigInt().Cmp(bv.BigInt()) == 0
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av.V, bv.V)
	case Text:
		bv, ok := b.(Text)
		return ok && av.V == bv.V
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !equalValue(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if !equalValue(av.Entries[i].Key, bv.Entries[i].Key) {
				return false
			}
			if !equalValue(av.Entries[i].Val, bv.Entries[i].Val) {
				return false
			}
		}
		return true
	case Tag:
		bv, ok := b.(Tag)
		return ok && av.Number == bv.Number && equalValue(av.Content, bv.Content)
	case Float:
		bv, ok := b.(Float)
		return ok && av.V == bv.V
	case Simple:
		bv, ok := b.(Simple)
		return ok && av.Code == bv.Code
	default:
		return false
	}
}
