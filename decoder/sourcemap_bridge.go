package decoder

import (
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/value"
)

// entryFor converts the dispatch layer's lightweight entrySpec into the
// sourcemap package's Entry shape. Kept as a single conversion point so
// dispatch code never needs to import sourcemap directly for anything but
// path-building helpers.
func entryFor(e *entrySpec) sourcemap.Entry {
	return sourcemap.Entry{
		Path:      e.path,
		Start:     uint32(e.start),
		End:       uint32(e.end),
		MajorType: e.majorType,
		TypeTag:   e.typeTag,
		HasParent: e.hasParent,
		Parent:    e.parent,
	}
}

// beginEntry opens a container-shaped entry (array, map, tag, a definite
// string) whose End is not yet known, and returns the index SetEnd/
// SetHeaderEnd (via endEntry/splitHeader) needs to finish it. It returns -1
// when no source map is being built, which the other helpers treat as a
// no-op sentinel.
func (st *decodeState) beginEntry(path, parent string, hasParent bool, start int, mt value.MajorType, typeTag string) int {
	if st.sm == nil {
		return -1
	}

	return st.sm.Add(sourcemap.Entry{
		Path:      path,
		Start:     uint32(start),
		MajorType: mt,
		TypeTag:   typeTag,
		HasParent: hasParent,
		Parent:    parent,
	})
}

// endEntry closes the entry opened by beginEntry.
func (st *decodeState) endEntry(idx, end int) {
	if st.sm == nil || idx < 0 {
		return
	}

	st.sm.SetEnd(idx, end)
}

// splitHeader marks the entry opened by beginEntry as a fixed-size header
// ending at headerEnd, and adds a sibling content entry at contentPath
// covering [headerEnd, contentEnd). It returns the content entry's index (or
// -1 when no source map is being built), for use with retagEntry once the
// payload has been decoded.
func (st *decodeState) splitHeader(idx, headerEnd, contentEnd int, contentPath string) int {
	if st.sm == nil || idx < 0 {
		return -1
	}

	return st.sm.SetHeaderEnd(idx, headerEnd, contentEnd, contentPath)
}

// retagEntry overwrites the label recorded for idx, typically with a
// cborutil.DiagnosticLabel built from the value that has since been decoded.
func (st *decodeState) retagEntry(idx int, tag string) {
	if st.sm == nil || idx < 0 {
		return
	}

	st.sm.SetTypeTag(idx, tag)
}
