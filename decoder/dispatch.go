package decoder

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ada-tools/ccbor/cborutil"
	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/value"
)

// decodeItem implements the major-type dispatch for exactly one data
// item starting at pos. path/parent/hasParent are the source-map
// coordinates this item should be recorded under; they are ignored when
// st.sm is nil.
func (st *decodeState) decodeItem(pos int, path, parent string, hasParent bool) (value.Value, int, error) {
	if err := st.checkDeadline(pos); err != nil {
		return nil, pos, err
	}

	if pos >= len(st.buf) {
		return nil, pos, errs.NewDecodeError(pos, errs.ErrTruncated)
	}

	headerPos := pos
	b := st.buf[pos]
	mt, ai := primitive.ExtractHeader(b)
	pos++

	switch mt {
	case 0:
		return st.decodeUnsigned(headerPos, pos, ai, path, parent, hasParent)
	case 1:
		return st.decodeNegative(headerPos, pos, ai, path, parent, hasParent)
	case 2:
		return st.decodeByteOrTextString(headerPos, pos, ai, false, path, parent, hasParent)
	case 3:
		return st.decodeByteOrTextString(headerPos, pos, ai, true, path, parent, hasParent)
	case 4:
		return st.decodeArray(headerPos, pos, ai, path, parent, hasParent)
	case 5:
		return st.decodeMap(headerPos, pos, ai, path, parent, hasParent)
	case 6:
		return st.decodeTag(headerPos, pos, ai, path, parent, hasParent)
	case 7:
		return st.decodeMajor7(headerPos, pos, ai, path, parent, hasParent)
	default:
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: major type %d out of range", errs.ErrTruncated, mt))
	}
}

// readArgument reads the argument encoded by additional_info ai, whose
// bytes (if any) start at argPos. headerPos is the initial byte's offset,
// used only for error reporting on reserved/indefinite misuse.
func (st *decodeState) readArgument(headerPos, argPos int, ai uint8) (val uint64, indefinite bool, newPos int, err error) {
	switch {
	case ai <= 23:
		return uint64(ai), false, argPos, nil
	case ai == 24, ai == 25, ai == 26, ai == 27:
		n := primitive.ArgumentWidth(ai)
		v, e := primitive.ReadUint(st.buf, argPos, n)
		if e != nil {
			return 0, false, argPos, errs.NewDecodeError(argPos, e)
		}

		return v, false, argPos + n, nil
	case ai == 31:
		return 0, true, argPos, nil
	default: // 28, 29, 30
		return 0, false, argPos, errs.NewDecodeError(headerPos, errs.ErrReservedAdditionalInfo)
	}
}

func (st *decodeState) recordEntry(e *entrySpec) {
	if st.sm == nil {
		return
	}

	st.sm.Add(entryFor(e))
}

// entrySpec is the minimal set of fields dispatch code needs to supply;
// see entryFor in sourcemap_bridge.go for how it becomes a sourcemap.Entry.
type entrySpec struct {
	path, parent string
	hasParent    bool
	start, end   int
	majorType    value.MajorType
	typeTag      string
}

func (st *decodeState) decodeUnsigned(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	val, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	if indefinite {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: major type 0 cannot be indefinite", errs.ErrReservedAdditionalInfo))
	}

	if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(val, ai) {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: integer not minimally encoded", errs.ErrNonCanonical))
	}

	v := value.Unsigned{V: val}
	st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorUnsigned, cborutil.DiagnosticLabel(v)})

	return v, pos, nil
}

func (st *decodeState) decodeNegative(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	val, indefinite, pos, err := st.readArgument(headerPos, argPos, ai)
	if err != nil {
		return nil, pos, err
	}

	if indefinite {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: major type 1 cannot be indefinite", errs.ErrReservedAdditionalInfo))
	}

	if st.cfg.validateCanonical && !primitive.IsCanonicalInteger(val, ai) {
		return nil, pos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: integer not minimally encoded", errs.ErrNonCanonical))
	}

	n := new(big.Int).SetUint64(val)
	trueVal := new(big.Int).Neg(n)
	trueVal.Sub(trueVal, big.NewInt(1))

	neg := value.Negative{Big: trueVal}
	if trueVal.IsInt64() {
		neg.Int64 = trueVal.Int64()
		neg.Big = nil
	}

	st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorNegative, cborutil.DiagnosticLabel(neg)})

	return neg, pos, nil
}

func (st *decodeState) decodeMajor7(headerPos, argPos int, ai uint8, path, parent string, hasParent bool) (value.Value, int, error) {
	switch {
	case ai == 20:
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, argPos, value.MajorSimple, cborutil.DiagnosticLabel(value.False)})
		return value.False, argPos, nil
	case ai == 21:
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, argPos, value.MajorSimple, cborutil.DiagnosticLabel(value.True)})
		return value.True, argPos, nil
	case ai == 22:
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, argPos, value.MajorSimple, cborutil.DiagnosticLabel(value.Null)})
		return value.Null, argPos, nil
	case ai == 23:
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, argPos, value.MajorSimple, cborutil.DiagnosticLabel(value.Undef)})
		return value.Undef, argPos, nil
	case ai == 24:
		code, err := primitive.ReadUint(st.buf, argPos, 1)
		if err != nil {
			return nil, argPos, errs.NewDecodeError(argPos, err)
		}

		if code < 32 {
			return nil, argPos, errs.NewDecodeError(headerPos, errs.ErrReservedAdditionalInfo)
		}

		pos := argPos + 1
		v := value.Simple{Code: value.SimpleCode(code)}
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorSimple, cborutil.DiagnosticLabel(v)})

		return v, pos, nil
	case ai == 25:
		bits, err := primitive.ReadUint(st.buf, argPos, 2)
		if err != nil {
			return nil, argPos, errs.NewDecodeError(argPos, err)
		}

		pos := argPos + 2
		f := value.Float{V: primitive.Float16ToFloat64(uint16(bits))}
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorSimple, "float16:" + cborutil.DiagnosticLabel(f)})

		return f, pos, nil
	case ai == 26:
		bits, err := primitive.ReadUint(st.buf, argPos, 4)
		if err != nil {
			return nil, argPos, errs.NewDecodeError(argPos, err)
		}

		pos := argPos + 4
		f := value.Float{V: float64(math.Float32frombits(uint32(bits)))}
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorSimple, "float32:" + cborutil.DiagnosticLabel(f)})

		return f, pos, nil
	case ai == 27:
		bits, err := primitive.ReadUint(st.buf, argPos, 8)
		if err != nil {
			return nil, argPos, errs.NewDecodeError(argPos, err)
		}

		pos := argPos + 8
		f := value.Float{V: math.Float64frombits(bits)}
		st.recordEntry(&entrySpec{path, parent, hasParent, headerPos, pos, value.MajorSimple, "float64:" + cborutil.DiagnosticLabel(f)})

		return f, pos, nil
	case ai == 28 || ai == 29 || ai == 30:
		return nil, argPos, errs.NewDecodeError(headerPos, errs.ErrReservedAdditionalInfo)
	case ai == 31:
		return nil, argPos, errs.NewDecodeError(headerPos, errs.ErrBreakMisuse)
	default:
		return nil, argPos, errs.NewDecodeError(headerPos, fmt.Errorf("%w: additional info %d out of range", errs.ErrReservedAdditionalInfo, ai))
	}
}
