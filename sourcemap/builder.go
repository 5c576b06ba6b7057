package sourcemap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ada-tools/ccbor/value"
)

// Map is the finished, queryable source map a decode pass produces. Its
// backing storage is an append-only slice in decode order, which is always
// non-decreasing in Start (a left-to-right scan never revisits bytes). At
// walks it linearly.
type Map struct {
	entries []Entry
	byPath  map[string]int
}

// Entries returns the flat, decode-ordered list of entries. The returned
// slice is owned by the Map and must not be mutated.
func (m *Map) Entries() []Entry {
	return m.entries
}

// Lookup returns the entry recorded for the given path, if any.
func (m *Map) Lookup(path string) (Entry, bool) {
	idx, ok := m.byPath[path]
	if !ok {
		return Entry{}, false
	}

	return m.entries[idx], true
}

// At returns the most specific entry whose byte range contains offset, i.e.
// the leaf of the containment chain at that offset. Entries are searched in
// decode order so that a later (therefore narrower, since children are
// always emitted after and nested within their parent's range) match wins.
func (m *Map) At(offset int) (Entry, bool) {
	off := uint32(offset)

	best := -1
	for i, e := range m.entries {
		if off < e.Start || off >= e.End {
			continue
		}

		if best == -1 || (e.End-e.Start) <= (m.entries[best].End-m.entries[best].Start) {
			best = i
		}
	}

	if best == -1 {
		return Entry{}, false
	}

	return m.entries[best], true
}

// Builder accumulates Entry records during a single decode pass. It is not
// safe for concurrent use; a decoder owns exactly one Builder for the
// duration of one Parse call.
type Builder struct {
	entries []Entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends e to the builder and, if e has a parent, records e.Path as one
// of the parent's children. It returns the index assigned to e, stable for
// the lifetime of the builder, for later use with SetEnd/SetHeaderEnd.
func (b *Builder) Add(e Entry) int {
	idx := len(b.entries)
	b.entries = append(b.entries, e)

	if e.HasParent {
		for i := range b.entries {
			if b.entries[i].Path == e.Parent {
				b.entries[i].Children = append(b.entries[i].Children, e.Path)
				break
			}
		}
	}

	return idx
}

// SetEnd records the closing byte offset for the entry at idx, once the
// decoder has finished consuming the value's bytes.
func (b *Builder) SetEnd(idx int, end int) {
	b.entries[idx].End = uint32(end)
}

// SetHeaderEnd splits the entry at idx into a fixed-size header — its own
// range narrowed to [start, headerEnd) — and a new sibling entry at
// contentPath covering [headerEnd, contentEnd), the remaining,
// variably-sized content. It returns the content entry's index. Grounded
// on the header/index-entry split the section package uses for its own
// fixed-layout byte ranges.
func (b *Builder) SetHeaderEnd(idx int, headerEnd, contentEnd int, contentPath string) int {
	he := uint32(headerEnd)
	b.entries[idx].IsHeader = true
	b.entries[idx].HeaderEnd = &he
	b.entries[idx].ContentPath = contentPath
	b.entries[idx].End = he

	return b.Add(Entry{
		Path:      contentPath,
		Start:     he,
		End:       uint32(contentEnd),
		MajorType: b.entries[idx].MajorType,
		TypeTag:   b.entries[idx].TypeTag,
		HasParent: true,
		Parent:    b.entries[idx].Path,
		IsContent: true,
	})
}

// SetTypeTag overwrites the human-readable label recorded for the entry at
// idx. Dispatch code uses this to upgrade a header-only placeholder label
// (e.g. "text(4)", known before the payload is read) to one that reflects
// the fully decoded value (e.g. a diagnostic label built from it), once
// decoding finishes.
func (b *Builder) SetTypeTag(idx int, tag string) {
	b.entries[idx].TypeTag = tag
}

// Build finalizes the accumulated entries into a queryable Map.
func (b *Builder) Build() *Map {
	byPath := make(map[string]int, len(b.entries))
	for i, e := range b.entries {
		byPath[e.Path] = i
	}

	return &Map{entries: b.entries, byPath: byPath}
}

// EscapeSegment backslash-escapes the path-grammar metacharacters ('.',
// '[', ']', '\\') that appear literally inside a map-key segment, so a key
// containing one of them cannot be mistaken for path structure.
func EscapeSegment(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '.', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// RootPath is the path assigned to the top-level decoded value.
const RootPath = ""

// ArrayElementPath returns the path of element index within an array at
// parent.
func ArrayElementPath(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// MapValuePath returns the path of the value mapped to key (the index'th
// entry of the map at parent). Only value.Text keys render as literal
// dotted segments (escaped via EscapeSegment); every other key type falls
// back to the positional "[#key:i]" form, so an integer key 1 can never
// collide with a text key "1".
func MapValuePath(parent string, key value.Value, index int) string {
	if txt, ok := key.(value.Text); ok && !txt.Indefinite {
		return parent + "." + EscapeSegment(txt.V)
	}

	return fmt.Sprintf("%s[#key:%d]", parent, index)
}

// TagContentPath returns the path of a tag's wrapped content value.
func TagContentPath(parent string) string {
	return parent + ".value"
}

// ContentPath returns the path of the variable-length content entry that
// follows a fixed-size header entry at parent, per SetHeaderEnd.
func ContentPath(parent string) string {
	return parent + "#content"
}
