package primitive

// CompareBytes implements the canonical CBOR key ordering: shorter length
// sorts first; equal-length slices compare lexicographically. It returns a
// negative number, zero, or a positive number, matching bytes.Compare's
// contract.
//
// This is the ordering the Map encoder's canonical sort and the decoder's
// canonical map-key order check both rely on (ordering is on *encoded* key
// bytes, not on the decoded value's natural ordering).
func CompareBytes(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}
