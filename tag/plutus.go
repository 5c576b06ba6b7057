package tag

import (
	"fmt"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/value"
)

// ConstructorIndex computes the Plutus constructor index encoded by tag
// number n:
//   - tag-121 for tags 121-127 (range 0-6)
//   - (tag-1280)+7 for tags 1280-1400 (range 7-127)
//
// Tag 102 does not encode the index in the tag number itself (it is read
// from content[0] instead — see DecodePlutus102); ConstructorIndex only
// handles the two compact ranges.
func ConstructorIndex(tagNumber uint64) (uint32, bool) {
	switch {
	case tagNumber >= 121 && tagNumber <= 127:
		return uint32(tagNumber - 121), true
	case tagNumber >= 1280 && tagNumber <= 1400:
		return uint32(tagNumber-1280) + 7, true
	default:
		return 0, false
	}
}

// CompactTagForConstructor is ConstructorIndex's inverse: given a
// constructor index in [0,127], it returns the compact tag number the
// encoder should emit (121-127 for indices 0-6, 1280-1400 for indices
// 7-127).
func CompactTagForConstructor(index uint32) (uint64, bool) {
	switch {
	case index <= 6:
		return 121 + uint64(index), true
	case index <= 127:
		return 1280 + uint64(index-7), true
	default:
		return 0, false
	}
}

// DecodePlutusCompact builds a PlutusConstr for tags 121-127 / 1280-1400,
// whose content must be an array (the fields themselves).
func DecodePlutusCompact(tagNumber uint64, content value.Value) (*value.PlutusConstr, error) {
	idx, ok := ConstructorIndex(tagNumber)
	if !ok {
		return nil, fmt.Errorf("%w: tag %d is not a compact Plutus constructor tag", errs.ErrTagSemantics, tagNumber)
	}

	arr, ok := content.(value.Array)
	if !ok {
		return nil, fmt.Errorf("%w: tag %d content must be an array", errs.ErrTagSemantics, tagNumber)
	}

	return &value.PlutusConstr{Constructor: idx, Fields: arr.Items}, nil
}

// DecodePlutus102 builds a PlutusConstr for tag 102, whose content must be
// exactly [uint, array]: the constructor index is content[0], the fields
// are content[1]'s elements.
func DecodePlutus102(content value.Value) (*value.PlutusConstr, error) {
	arr, ok := content.(value.Array)
	if !ok || len(arr.Items) != 2 {
		return nil, fmt.Errorf("%w: tag 102 content must be [uint, array]", errs.ErrTagSemantics)
	}

	idxVal, ok := arr.Items[0].(value.Unsigned)
	if !ok {
		return nil, fmt.Errorf("%w: tag 102 first element must be a uint", errs.ErrTagSemantics)
	}

	fields, ok := arr.Items[1].(value.Array)
	if !ok {
		return nil, fmt.Errorf("%w: tag 102 second element must be an array", errs.ErrTagSemantics)
	}

	return &value.PlutusConstr{Constructor: uint32(idxVal.V), Fields: fields.Items}, nil
}
