package keyset

import "github.com/ada-tools/ccbor/value"

// Set is an insertion-order-agnostic set of CBOR values keyed by
// Fingerprint, with collision resolution by full structural Equal. It
// backs both the decoder's dup_map_key "seen" tracking and the tag-258
// Set-uniqueness validator.
type Set struct {
	buckets map[uint64]*bucket
	count   int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{buckets: make(map[uint64]*bucket)}
}

// Contains reports whether an Equal value was already added.
func (s *Set) Contains(v value.Value) bool {
	b, ok := s.buckets[Fingerprint(v)]
	if !ok {
		return false
	}

	return b.contains(v)
}

// Add inserts v, returning false if an Equal value was already present
// (Add is a no-op in that case) and true otherwise.
func (s *Set) Add(v value.Value) bool {
	h := Fingerprint(v)

	b, ok := s.buckets[h]
	if !ok {
		b = &bucket{}
		s.buckets[h] = b
	} else if b.contains(v) {
		return false
	}

	b.add(v)
	s.count++

	return true
}

// Len reports the number of distinct values added.
func (s *Set) Len() int { return s.count }
