package decoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/cborutil"
	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/keyset"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/value"
)

func (st *decodeState) decodeArray(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	count, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	if indefinite && !st.cfg.allowIndefinite {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: indefinite-length array", errs.ErrNonCanonical))
	}

	if !indefinite {
		if st.cfg.maxArrayLength > 0 && count > uint64(st.cfg.maxArrayLength) {
			return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: array length %d exceeds max_array_length %d", errs.ErrSizeExceeded, count, st.cfg.maxArrayLength))
		}

		if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(count, ai) {
			return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: array length not minimally encoded", errs.ErrNonCanonical))
		}
	}

	if st.cfg.maxDepth > 0 && st.depth >= st.cfg.maxDepth {
		return nil, pos, errs.NewDecodeError(headerPos, errs.ErrDepthExceeded)
	}

	idx := st.beginEntry(path, parent, hasParent, headerPos, value.MajorArray, "Array")

	st.depth++
	items := []value.Value{}

	if indefinite {
		for {
			if pos >= len(st.buf) {
				return nil, pos, errs.NewDecodeError(pos, errs.ErrTruncated)
			}

			if st.buf[pos] == 0xFF {
				pos++
				break
			}

			childPath := sourcemap.ArrayElementPath(path, len(items))
			item, next, err := st.decodeItem(pos, childPath, path, true)
			if err != nil {
				st.depth--
				return nil, pos, err
			}

			items = append(items, item)
			pos = next
		}
	} else {
		for i := 0; i < int(count); i++ {
			childPath := sourcemap.ArrayElementPath(path, i)
			item, next, err := st.decodeItem(pos, childPath, path, true)
			if err != nil {
				st.depth--
				return nil, pos, err
			}

			items = append(items, item)
			pos = next
		}
	}

	st.depth--
	v := value.Array{Items: items, Indefinite: indefinite}
	st.retagEntry(idx, cborutil.DiagnosticLabel(v))
	st.endEntry(idx, pos)

	return v, pos, nil
}

func (st *decodeState) decodeMap(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	count, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	if indefinite && !st.cfg.allowIndefinite {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: indefinite-length map", errs.ErrNonCanonical))
	}

	if !indefinite {
		if st.cfg.maxMapSize > 0 && count > uint64(st.cfg.maxMapSize) {
			return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: map size %d exceeds max_map_size %d", errs.ErrSizeExceeded, count, st.cfg.maxMapSize))
		}

		if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(count, ai) {
			return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: map size not minimally encoded", errs.ErrNonCanonical))
		}
	}

	if st.cfg.maxDepth > 0 && st.depth >= st.cfg.maxDepth {
		return nil, pos, errs.NewDecodeError(headerPos, errs.ErrDepthExceeded)
	}

	idx := st.beginEntry(path, parent, hasParent, headerPos, value.MajorMap, "Map")

	st.depth++

	allEntries := []value.MapEntry{}
	seen := keyset.NewSet()

	decodeOne := func(n int) (bool, int, error) {
		if indefinite && pos < len(st.buf) && st.buf[pos] == 0xFF {
			return true, pos + 1, nil
		}

		key, next, err := st.decodeItem(pos, fmt.Sprintf("%s[#key:%d]", path, n), path, true)
		if err != nil {
			return false, pos, err
		}

		valPath := sourcemap.MapValuePath(path, key, n)
		val, next2, err := st.decodeItem(next, valPath, path, true)
		if err != nil {
			return false, next, err
		}

		if seen.Contains(key) {
			switch st.cfg.dupMapKey {
			case DupMapKeyReject:
				return false, next2, errs.NewDecodeError(pos, errs.ErrDuplicateMapKey)
			case DupMapKeyWarn:
				if st.cfg.duplicateKeySink != nil {
					st.cfg.duplicateKeySink(DuplicateKeyEvent{Path: path, Key: key, Offset: pos})
				}
			}
		} else {
			seen.Add(key)
		}

		allEntries = append(allEntries, value.MapEntry{Key: key, Val: val})
		pos = next2

		return false, pos, nil
	}

	if indefinite {
		n := 0
		for {
			done, next, err := decodeOne(n)
			pos = next
			if err != nil {
				st.depth--
				return nil, pos, err
			}

			if done {
				break
			}

			n++
		}
	} else {
		for n := 0; n < int(count); n++ {
			_, next, err := decodeOne(n)
			pos = next
			if err != nil {
				st.depth--
				return nil, pos, err
			}
		}
	}

	st.depth--

	if st.cfg.validateCanonical {
		if err := checkCanonicalMapOrder(allEntries); err != nil {
			return nil, pos, errs.NewDecodeError(headerPos, err)
		}
	}

	m := value.NewMap(allEntries, indefinite)
	st.retagEntry(idx, cborutil.DiagnosticLabel(m))
	st.endEntry(idx, pos)

	return m, pos, nil
}
