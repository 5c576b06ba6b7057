package value

// MapEntry is one key-value pair of a decoded CBOR map.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is major type 5: an ordered sequence of key-value entries whose key
// set is typed, not string-coerced — an integer key and a text key with
// the same surface rendering ("1" vs 1) are distinct entries.
//
// Entries holds the deduplicated, last-write-wins view applications
// consume via Get/Len. AllEntries holds every pair in original
// order, including duplicates; it is what the encoder replays in
// non-canonical round-trip mode and is always populated, even for maps
// with no duplicates, so the encoder never needs to special-case "was
// this map round-tripped".
type Map struct {
	Entries    []MapEntry
	AllEntries []MapEntry
	Indefinite bool
}

// MajorType and isValue make *Map satisfy Value; maps are always referenced
// by pointer since NewMap builds Entries incrementally.
func (*Map) MajorType() MajorType { return MajorMap }
func (*Map) isValue()             {}

var _ Value = (*Map)(nil)

// NewMap builds a Map's deduplicated Entries view from AllEntries: the
// first occurrence's position is kept, the last occurrence's value wins,
// matching a conventional "last write wins" map semantics while preserving
// the position a reader would expect the key to first appear at.
func NewMap(allEntries []MapEntry, indefinite bool) *Map {
	m := &Map{
		AllEntries: allEntries,
		Indefinite: indefinite,
	}

	for _, e := range allEntries {
		found := -1

		for idx := range m.Entries {
			if equalValue(m.Entries[idx].Key, e.Key) {
				found = idx
				break
			}
		}

		if found >= 0 {
			m.Entries[found].Val = e.Val
			continue
		}

		m.Entries = append(m.Entries, e)
	}

	return m
}

// Get looks up key by deep structural identity (variant tag first, then
// payload), not by a stringified rendering. For large maps where lookup
// performance matters, decoder-side validators (duplicate-key detection,
// tag-258 set uniqueness) use the hash-accelerated equality in
// internal/keyset instead; Get favors simplicity since decoded maps are
// typically small.
func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.Entries {
		if equalValue(e.Key, key) {
			return e.Val, true
		}
	}

	return nil, false
}

// Len reports the number of deduplicated entries.
func (m *Map) Len() int { return len(m.Entries) }

// HasDuplicates reports whether AllEntries contains any repeated key.
func (m *Map) HasDuplicates() bool {
	return len(m.AllEntries) != len(m.Entries)
}
