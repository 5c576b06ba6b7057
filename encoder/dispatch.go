package encoder

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/keybytes"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/tag"
	"github.com/ada-tools/ccbor/value"
)

// encodeValue dispatches on v's concrete type and applies the per-variant
// encoding rule for that type. path is used only to anchor errors.
func (st *encodeState) encodeValue(v value.Value, path string) error {
	switch tv := v.(type) {
	case value.Unsigned:
		return st.encodeUnsigned(tv, path)
	case value.Negative:
		return st.encodeNegative(tv, path)
	case value.Bytes:
		return st.encodeByteOrTextString(2, tv.V, tv.Indefinite, tv.Chunks, nil, path)
	case value.Text:
		return st.encodeTextValue(tv, path)
	case value.Array:
		return st.encodeArray(tv, path)
	case *value.Map:
		return st.encodeMap(tv, path)
	case value.Tag:
		return st.encodeTag(tv, path)
	case value.Float:
		return st.encodeFloat(tv, path)
	case value.Simple:
		return st.encodeSimple(tv, path)
	case nil:
		return errs.NewEncodeError(path, fmt.Errorf("%w: nil value", errs.ErrUnsupportedValue))
	default:
		return errs.NewEncodeError(path, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v))
	}
}

func (st *encodeState) writeUintHead(majorType uint8, val uint64) {
	ai := primitive.MinimalAdditionalInfo(val)
	st.buf.B = append(st.buf.B, (majorType<<5)|ai)

	if w := primitive.ArgumentWidth(ai); w > 0 {
		st.buf.B = primitive.WriteUint(st.buf.B, val, w)
	}
}

func (st *encodeState) writeIndefiniteHead(majorType uint8) {
	st.buf.B = append(st.buf.B, (majorType<<5)|31)
}

func (st *encodeState) writeBreak() {
	st.buf.B = append(st.buf.B, 0xFF)
}

func (st *encodeState) encodeBignumTag(tagNumber uint64, n *big.Int, path string) error {
	payload := tag.EncodeBignumPayload(n)

	st.writeUintHead(6, tagNumber)
	st.writeUintHead(2, uint64(len(payload)))
	st.buf.B = append(st.buf.B, payload...)

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeUnsigned(u value.Unsigned, path string) error {
	if u.Big != nil && !u.Big.IsUint64() {
		return st.encodeBignumTag(2, u.Big, path)
	}

	if !st.cfg.canonical && u.FromBignumTag {
		return st.encodeBignumTag(2, u.BigInt(), path)
	}

	val := u.V
	if u.Big != nil {
		val = u.Big.Uint64()
	}

	st.writeUintHead(0, val)

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeNegative(n value.Negative, path string) error {
	trueVal := n.BigInt()

	if n.Big != nil && !fitsNegative64(n.Big) {
		return st.encodeBignumTag(3, wireArgumentFromTrueNegative(trueVal), path)
	}

	if !st.cfg.canonical && n.FromBignumTag {
		return st.encodeBignumTag(3, wireArgumentFromTrueNegative(trueVal), path)
	}

	wireArg := wireArgumentFromTrueNegative(trueVal)
	st.writeUintHead(1, wireArg.Uint64())

	return st.checkOutputSize(path)
}

// fitsNegative64 reports whether a true negative value (as stored in
// Negative.Big) still fits CBOR's native major-type-1 representation,
// i.e. its wire argument n = -1-trueVal fits in a uint64.
func fitsNegative64(trueVal *big.Int) bool {
	return wireArgumentFromTrueNegative(trueVal).IsUint64()
}

// wireArgumentFromTrueNegative computes n = -1-trueVal, the non-negative
// wire argument major type 1 (or a bignum tag 3 payload) encodes.
func wireArgumentFromTrueNegative(trueVal *big.Int) *big.Int {
	n := new(big.Int).Neg(trueVal)
	n.Sub(n, big.NewInt(1))

	return n
}

func (st *encodeState) encodeTextValue(tv value.Text, path string) error {
	return st.encodeByteOrTextString(3, []byte(tv.V), tv.Indefinite, nil, tv.Chunks, path)
}

// encodeByteOrTextString handles both major type 2 and 3. Exactly one of
// byteChunks/textChunks is used, selected by majorType.
func (st *encodeState) encodeByteOrTextString(majorType uint8, payload []byte, indefinite bool, byteChunks [][]byte, textChunks []string, path string) error {
	if indefinite && st.cfg.allowIndefinite {
		st.writeIndefiniteHead(majorType)

		if majorType == 2 {
			for _, c := range byteChunks {
				st.writeUintHead(majorType, uint64(len(c)))
				st.buf.B = append(st.buf.B, c...)
			}
		} else {
			for _, c := range textChunks {
				st.writeUintHead(majorType, uint64(len(c)))
				st.buf.B = append(st.buf.B, c...)
			}
		}

		st.writeBreak()

		return st.checkOutputSize(path)
	}

	st.writeUintHead(majorType, uint64(len(payload)))
	st.buf.B = append(st.buf.B, payload...)

	return st.checkOutputSize(path)
}

func (st *encodeState) enterContainer(path string) error {
	if st.cfg.maxDepth > 0 && st.depth >= st.cfg.maxDepth {
		return errs.NewEncodeError(path, errs.ErrDepthExceeded)
	}

	st.depth++

	return nil
}

func (st *encodeState) leaveContainer() {
	st.depth--
}

func (st *encodeState) encodeArray(a value.Array, path string) error {
	if err := st.enterContainer(path); err != nil {
		return err
	}
	defer st.leaveContainer()

	if a.Indefinite && st.cfg.allowIndefinite {
		st.writeIndefiniteHead(4)

		for i, item := range a.Items {
			if err := st.encodeValue(item, sourcemap.ArrayElementPath(path, i)); err != nil {
				return err
			}
		}

		st.writeBreak()

		return st.checkOutputSize(path)
	}

	st.writeUintHead(4, uint64(len(a.Items)))

	for i, item := range a.Items {
		if err := st.encodeValue(item, sourcemap.ArrayElementPath(path, i)); err != nil {
			return err
		}
	}

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeMap(m *value.Map, path string) error {
	if err := st.enterContainer(path); err != nil {
		return err
	}
	defer st.leaveContainer()

	if st.cfg.rejectDuplicateKeys && m.HasDuplicates() {
		return errs.NewEncodeError(path, errs.ErrDuplicateMapKey)
	}

	if st.cfg.canonical {
		return st.encodeMapCanonical(m, path)
	}

	return st.encodeMapPreserve(m, path)
}

func (st *encodeState) encodeMapCanonical(m *value.Map, path string) error {
	entries := append([]value.MapEntry(nil), m.Entries...)

	keyed := make([][]byte, len(entries))
	for i, e := range entries {
		keyed[i] = keybytes.Encode(nil, e.Key)
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}

	sort.Slice(idx, func(i, j int) bool {
		return primitive.CompareBytes(keyed[idx[i]], keyed[idx[j]]) < 0
	})

	st.writeUintHead(5, uint64(len(entries)))

	for n, i := range idx {
		e := entries[i]

		if err := st.encodeValue(e.Key, fmt.Sprintf("%s[#key:%d]", path, n)); err != nil {
			return err
		}

		if err := st.encodeValue(e.Val, sourcemap.MapValuePath(path, e.Key, n)); err != nil {
			return err
		}
	}

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeMapPreserve(m *value.Map, path string) error {
	entries := m.AllEntries

	if m.Indefinite && st.cfg.allowIndefinite {
		st.writeIndefiniteHead(5)

		for n, e := range entries {
			if err := st.encodeMapEntry(e, path, n); err != nil {
				return err
			}
		}

		st.writeBreak()

		return st.checkOutputSize(path)
	}

	st.writeUintHead(5, uint64(len(entries)))

	for n, e := range entries {
		if err := st.encodeMapEntry(e, path, n); err != nil {
			return err
		}
	}

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeMapEntry(e value.MapEntry, path string, n int) error {
	if err := st.encodeValue(e.Key, fmt.Sprintf("%s[#key:%d]", path, n)); err != nil {
		return err
	}

	return st.encodeValue(e.Val, sourcemap.MapValuePath(path, e.Key, n))
}

func (st *encodeState) encodeTag(tv value.Tag, path string) error {
	if err := st.enterContainer(path); err != nil {
		return err
	}
	defer st.leaveContainer()

	st.writeUintHead(6, tv.Number)

	if err := st.encodeValue(tv.Content, sourcemap.TagContentPath(path)); err != nil {
		return err
	}

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeFloat(f value.Float, path string) error {
	if bits, ok := primitive.Float64ToFloat16(f.V); ok {
		st.buf.B = append(st.buf.B, (7<<5)|25)
		st.buf.B = primitive.WriteUint(st.buf.B, uint64(bits), 2)

		return st.checkOutputSize(path)
	}

	if f32, ok := primitive.Float32ExactRoundTrip(f.V); ok {
		st.buf.B = append(st.buf.B, (7<<5)|26)
		st.buf.B = primitive.WriteUint(st.buf.B, uint64(math.Float32bits(f32)), 4)

		return st.checkOutputSize(path)
	}

	st.buf.B = append(st.buf.B, (7<<5)|27)
	st.buf.B = primitive.WriteUint(st.buf.B, math.Float64bits(f.V), 8)

	return st.checkOutputSize(path)
}

func (st *encodeState) encodeSimple(s value.Simple, path string) error {
	if s.Code <= 23 {
		st.buf.B = append(st.buf.B, (7<<5)|byte(s.Code))
		return st.checkOutputSize(path)
	}

	st.buf.B = append(st.buf.B, (7<<5)|24, byte(s.Code))

	return st.checkOutputSize(path)
}
