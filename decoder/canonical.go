package decoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/keybytes"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/value"
)

// checkCanonicalMapOrder enforces the canonical-map invariant: entries
// sorted by the encoded-byte ordering of their keys (shorter,
// then lexicographic), with no duplicates. It is only invoked when
// validate_canonical is set, at which point dup_map_key has already been
// forced to reject (see WithCanonicalValidation), so a duplicate here
// indicates the caller constructed a Config by hand without going through
// that option.
func checkCanonicalMapOrder(entries []value.MapEntry) error {
	var prev []byte

	for i, e := range entries {
		cur := keybytes.Encode(nil, e.Key)

		if i > 0 && primitive.CompareBytes(prev, cur) >= 0 {
			return fmt.Errorf("%w: map keys not in canonical order at entry %d", errs.ErrNonCanonical, i)
		}

		prev = cur
	}

	return nil
}
