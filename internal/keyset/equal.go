package keyset

import "github.com/ada-tools/ccbor/value"

// Equal performs the same deep structural comparison the decoder's
// duplicate-key and set-uniqueness checks require: integer 1 and text "1"
// are different, true and 1 are different, a byte string and a text string
// with identical bytes are different, because they carry different major
// types.
func Equal(a, b value.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.MajorType() != b.MajorType() {
		return false
	}

	switch av := a.(type) {
	case value.Unsigned:
		bv, ok := b.(value.Unsigned)
		return ok && av.BigInt().Cmp(bv.BigInt()) == 0
	case value.Negative:
		bv, ok := b.(value.Negative)
		return ok && av.BigInt().Cmp(bv.BigInt()) == 0
	case value.Bytes:
		bv, ok := b.(value.Bytes)
		return ok && string(av.V) == string(bv.V)
	case value.Text:
		bv, ok := b.(value.Text)
		return ok && av.V == bv.V
	case value.Array:
		bv, ok := b.(value.Array)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}

		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}

		return true
	case *value.Map:
		bv, ok := b.(*value.Map)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}

		for i := range av.Entries {
			if !Equal(av.Entries[i].Key, bv.Entries[i].Key) || !Equal(av.Entries[i].Val, bv.Entries[i].Val) {
				return false
			}
		}

		return true
	case value.Tag:
		bv, ok := b.(value.Tag)
		return ok && av.Number == bv.Number && Equal(av.Content, bv.Content)
	case value.Float:
		bv, ok := b.(value.Float)
		return ok && av.V == bv.V
	case value.Simple:
		bv, ok := b.(value.Simple)
		return ok && av.Code == bv.Code
	default:
		return false
	}
}
