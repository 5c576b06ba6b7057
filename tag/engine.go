// Package tag implements the tag engine embedded in both the decoder and
// the encoder: semantic validation of RFC 8949's standard tags (0, 1, 4,
// 5, 32-36, 258) and the Cardano Plutus constructor tags (102, 121-127,
// 1280-1400), plus bignum (tag 2/3) conversion. It is invoked after the
// decoder has already produced the tag's content subtree.
//
// Grounded on other_examples/8b876cfa (pgrange/aiken2go's plutusdata.go)
// for the constructor-tag arithmetic, and on other_examples/37aba9f4
// (aws-smithy-go's cbor package) for the tag-as-number-plus-content shape.
package tag

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/keyset"
	"github.com/ada-tools/ccbor/value"
)

// Options controls which semantic checks Validate performs. All default to
// disabled so a caller that wants plain "accept the tag number, return its
// content unchanged" behavior does not have to opt out of anything.
type Options struct {
	ValidateTagSemantics    bool
	ValidatePlutusSemantics bool
	ValidateSetUniqueness   bool
	MaxBignumBytes          int // 0 means unlimited
}

var rfc3339Pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

// uriSchemePattern matches the scheme component of RFC 3986: ALPHA
// *(ALPHA/DIGIT/"+"/"-"/".") followed by ":".
var uriSchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+\-.]*:`)

// Validate dispatches on tagNumber and applies the semantic rule
// appropriate to it. It returns the value the decoder should use in place of the
// raw Tag{Number, Content} node:
//   - tags 2/3 return a bare Unsigned/Negative (the bignum conversion,
//     which is unconditional, not gated by ValidateTagSemantics)
//   - tags 102/121-127/1280-1400 return a Tag with Plutus populated
//   - every other tag returns a Tag with Content unchanged
//
// Errors are always errs.ErrTagSemantics, errs.ErrSetUniqueness or
// errs.ErrBignumTooLarge, as appropriate.
func Validate(tagNumber uint64, content value.Value, opts Options) (value.Value, error) {
	switch tagNumber {
	case 2, 3:
		return DecodeBignum(tagNumber, content, opts.MaxBignumBytes)
	}

	if tagNumber == 102 || (tagNumber >= 121 && tagNumber <= 127) || (tagNumber >= 1280 && tagNumber <= 1400) {
		return validatePlutus(tagNumber, content, opts)
	}

	if opts.ValidateTagSemantics {
		if err := validateStandardTag(tagNumber, content); err != nil {
			return nil, err
		}
	}

	if tagNumber == 258 && opts.ValidateSetUniqueness {
		if err := validateSetUniqueness(content); err != nil {
			return nil, err
		}
	}

	return value.Tag{Number: tagNumber, Content: content}, nil
}

func validatePlutus(tagNumber uint64, content value.Value, opts Options) (value.Value, error) {
	var (
		pc  *value.PlutusConstr
		err error
	)

	if tagNumber == 102 {
		pc, err = DecodePlutus102(content)
	} else {
		pc, err = DecodePlutusCompact(tagNumber, content)
	}

	if err != nil {
		if opts.ValidatePlutusSemantics {
			return nil, err
		}
		// Lenient mode: malformed Plutus shape is not fatal, the tag is
		// still accepted with its raw content and no decoration.
		return value.Tag{Number: tagNumber, Content: content}, nil
	}

	return value.Tag{Number: tagNumber, Content: content, Plutus: pc}, nil
}

func validateStandardTag(tagNumber uint64, content value.Value) error {
	switch tagNumber {
	case 0:
		txt, ok := content.(value.Text)
		if !ok || !rfc3339Pattern.MatchString(txt.V) {
			return fmt.Errorf("%w: tag 0 content must be an RFC 3339 date-time string", errs.ErrTagSemantics)
		}
	case 1:
		switch content.(type) {
		case value.Unsigned, value.Negative, value.Float:
		default:
			return fmt.Errorf("%w: tag 1 content must be an integer or float", errs.ErrTagSemantics)
		}
	case 4, 5:
		arr, ok := content.(value.Array)
		if !ok || len(arr.Items) != 2 {
			return fmt.Errorf("%w: tag %d content must be a 2-element array", errs.ErrTagSemantics, tagNumber)
		}

		for i, item := range arr.Items {
			switch item.(type) {
			case value.Unsigned, value.Negative:
			default:
				return fmt.Errorf("%w: tag %d element %d must be an integer", errs.ErrTagSemantics, tagNumber, i)
			}
		}
	case 32:
		txt, ok := content.(value.Text)
		if !ok || !uriSchemePattern.MatchString(txt.V) || !strings.Contains(txt.V, ":") {
			return fmt.Errorf("%w: tag 32 content must be a URI with a valid scheme", errs.ErrTagSemantics)
		}
	case 33, 34, 35, 36:
		if _, ok := content.(value.Text); !ok {
			return fmt.Errorf("%w: tag %d content must be a text string", errs.ErrTagSemantics, tagNumber)
		}
	}

	return nil
}

func validateSetUniqueness(content value.Value) error {
	arr, ok := content.(value.Array)
	if !ok {
		return fmt.Errorf("%w: tag 258 content must be an array", errs.ErrTagSemantics)
	}

	seen := keyset.NewSet()
	for _, item := range arr.Items {
		if !seen.Add(item) {
			return fmt.Errorf("%w: tag 258 elements must be structurally distinct", errs.ErrSetUniqueness)
		}
	}

	return nil
}
