package keyset

import "github.com/ada-tools/ccbor/value"

// bucket resolves hash collisions for a single fingerprint: most buckets
// hold exactly one value, so the common path never allocates a slice. It
// plays the same role as a collision.Tracker resolving different metric
// names sharing a hash, here applied to structurally distinct values
// sharing a fingerprint.
type bucket struct {
	first value.Value
	rest  []value.Value
}

func (b *bucket) contains(v value.Value) bool {
	if b.first != nil && Equal(b.first, v) {
		return true
	}

	for _, existing := range b.rest {
		if Equal(existing, v) {
			return true
		}
	}

	return false
}

func (b *bucket) add(v value.Value) {
	if b.first == nil {
		b.first = v
		return
	}

	b.rest = append(b.rest, v)
}
