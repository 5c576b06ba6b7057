// Package sourcemap builds a path-indexed byte-range index as a side
// effect of decoding: every decoded subvalue's exact originating byte
// range, its parent/child links, and a human-readable type label.
//
// The header/content split for sized types and the byte-offset bookkeeping
// follow a NumericHeader/NumericIndexEntry-style shape, which tracks fixed
// byte ranges within a blob the same way an Entry tracks a value's byte
// range within the input.
package sourcemap

import "github.com/ada-tools/ccbor/value"

// Entry is one record of the flat, append-only source map.
type Entry struct {
	Path string

	Start, End uint32 // half-open byte range [Start, End) in the input

	MajorType value.MajorType
	TypeTag   string // human label, e.g. "array(3)", "bytes(32 bytes)", "tag(121,constr=0,fields=2)"

	HasParent bool
	Parent    string

	Children []string

	IsHeader  bool
	IsContent bool
	HeaderEnd *uint32 // set only when IsHeader

	ContentPath string // set only when IsHeader; the sibling #content entry's path
}

// Range returns the entry's half-open byte range as two ints, for callers
// that prefer not to deal with uint32.
func (e Entry) Range() (start, end int) {
	return int(e.Start), int(e.End)
}
