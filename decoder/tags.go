package decoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/cborutil"
	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/tag"
	"github.com/ada-tools/ccbor/value"
)

func (st *decodeState) decodeTag(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	number, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	if indefinite {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: tag number cannot be indefinite", errs.ErrReservedAdditionalInfo))
	}

	if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(number, ai) {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: tag number not minimally encoded", errs.ErrNonCanonical))
	}

	if st.cfg.maxTagDepth > 0 && st.tagDepth >= st.cfg.maxTagDepth {
		return nil, pos, errs.NewDecodeError(headerPos, errs.ErrTagDepthExceeded)
	}

	idx := st.beginEntry(path, parent, hasParent, headerPos, value.MajorTag, fmt.Sprintf("tag(%d)", number))
	contentPath := sourcemap.TagContentPath(path)

	st.tagDepth++
	content, next, err := st.decodeItem(pos, contentPath, path, true)
	st.tagDepth--

	if err != nil {
		return nil, pos, err
	}

	opts := tag.Options{
		ValidateTagSemantics:    st.cfg.validateTagSemantics,
		ValidatePlutusSemantics: st.cfg.validatePlutusSemantics,
		ValidateSetUniqueness:   st.cfg.validateSetUniqueness,
		MaxBignumBytes:          st.cfg.maxBignumBytes,
	}

	v, err := tag.Validate(number, content, opts)
	if err != nil {
		return nil, next, errs.NewDecodeError(headerPos, err)
	}

	st.retagEntry(idx, cborutil.DiagnosticLabel(v))
	st.endEntry(idx, next)

	return v, next, nil
}
