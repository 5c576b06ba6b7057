package decoder_test

import (
	"math/big"
	"testing"

	"github.com/ada-tools/ccbor/decoder"
	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/value"
	"github.com/stretchr/testify/require"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := primitive.HexToBytes(s)
	require.NoError(t, err)
	return b
}

// Scenario 1: direct positive integer.
func TestParseDirectPositiveInteger(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "1864"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, value.Unsigned{V: 100}, v)
}

// Scenario 2: text "IETF".
func TestParseTextString(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "6449455446"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, value.Text{V: "IETF"}, v)
}

// Scenario 3: small array.
func TestParseSmallArray(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "83010203"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, value.Array{Items: []value.Value{
		value.Unsigned{V: 1}, value.Unsigned{V: 2}, value.Unsigned{V: 3},
	}}, v)
}

// Scenario 4: Plutus Nothing.
func TestParsePlutusNothing(t *testing.T) {
	d, err := decoder.New(decoder.Cardano()...)
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "d87980"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	tv, ok := v.(value.Tag)
	require.True(t, ok)
	require.Equal(t, uint64(121), tv.Number)
	require.NotNil(t, tv.Plutus)
	require.Equal(t, uint32(0), tv.Plutus.Constructor)
	require.Empty(t, tv.Plutus.Fields)
}

// Scenario 5: indefinite bytes, two chunks.
func TestParseIndefiniteBytes(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "5f42010243030405ff"))
	require.NoError(t, err)
	require.Equal(t, 9, n)

	bs, ok := v.(value.Bytes)
	require.True(t, ok)
	require.True(t, bs.Indefinite)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, bs.V)
	require.Equal(t, [][]byte{{0x01, 0x02}, {0x03, 0x04, 0x05}}, bs.Chunks)
}

// Scenario 6: canonical reject duplicate.
func TestParseStrictRejectsDuplicateKey(t *testing.T) {
	d, err := decoder.New(decoder.Strict()...)
	require.NoError(t, err)

	_, _, err = d.Parse(hexBytes(t, "a2616101616102"))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDuplicateMapKey)

	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, 4, de.Offset)
}

// Scenario 7: bignum 2^64.
func TestParseBignumTag2(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "c249010000000000000000"))
	require.NoError(t, err)
	require.Equal(t, 11, n)

	u, ok := v.(value.Unsigned)
	require.True(t, ok)
	require.True(t, u.FromBignumTag)
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	require.Equal(t, 0, u.BigInt().Cmp(want))
}

func TestParseArgumentWidthBoundaries(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	cases := []struct {
		hex  string
		want uint64
	}{
		{"17", 23},
		{"1818", 24},
		{"18ff", 255},
		{"190100", 256},
		{"19ffff", 65535},
		{"1a00010000", 65536},
		{"1affffffff", 0xFFFFFFFF},
		{"1b0000000100000000", 0x100000000},
	}

	for _, c := range cases {
		v, _, err := d.Parse(hexBytes(t, c.hex))
		require.NoError(t, err, c.hex)
		require.Equal(t, value.Unsigned{V: c.want}, v, c.hex)
	}
}

func TestParseEmptyContainers(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, _, err := d.Parse(hexBytes(t, "80"))
	require.NoError(t, err)
	require.Equal(t, value.Array{Items: []value.Value{}}, v)

	v, _, err = d.Parse(hexBytes(t, "a0"))
	require.NoError(t, err)
	m, ok := v.(*value.Map)
	require.True(t, ok)
	require.Equal(t, 0, m.Len())

	v, _, err = d.Parse(hexBytes(t, "40"))
	require.NoError(t, err)
	require.Equal(t, value.Bytes{V: []byte{}}, v)

	v, _, err = d.Parse(hexBytes(t, "60"))
	require.NoError(t, err)
	require.Equal(t, value.Text{V: ""}, v)
}

func TestParseIndefiniteEmptyArray(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, err := d.Parse(hexBytes(t, "9fff"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, value.Array{Items: []value.Value{}, Indefinite: true}, v)
}

func TestParseRejectsDepthExceeded(t *testing.T) {
	d, err := decoder.New(decoder.WithMaxDepth(2))
	require.NoError(t, err)

	// [[[1]]] - three levels of array nesting.
	_, _, err = d.Parse(hexBytes(t, "81818101"))
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestParseBignumBoundary(t *testing.T) {
	d, err := decoder.New(decoder.WithMaxBignumBytes(4))
	require.NoError(t, err)

	// tag 2, 4-byte payload -> ok
	_, _, err = d.Parse(hexBytes(t, "c244ffffffff"))
	require.NoError(t, err)

	// tag 2, 5-byte payload -> rejected
	_, _, err = d.Parse(hexBytes(t, "c245ffffffffff"))
	require.ErrorIs(t, err, errs.ErrBignumTooLarge)
}

func TestParseMapDistinguishesIntegerAndTextKeys(t *testing.T) {
	d, err := decoder.New(decoder.Strict()...)
	require.NoError(t, err)

	// {1: "int", "1": "text"} - encoded with byte-string-length-ascending
	// canonical order: integer key 1 (0x01) sorts before 1-byte text "1"
	// (0x61 0x31), since both keys, as full CBOR bytes, are length 1 for
	// the integer and length 2 for the text string.
	hex := "a2" + "01" + "63696e74" + "6131" + "6474657874"
	_, _, err = d.Parse(hexBytes(t, hex))
	require.NoError(t, err)
}

func TestParseSequence(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	items, err := d.ParseSequence(hexBytes(t, "010203"))
	require.NoError(t, err)
	require.Equal(t, []value.Value{
		value.Unsigned{V: 1}, value.Unsigned{V: 2}, value.Unsigned{V: 3},
	}, items)
}

func TestParseWithSourceMapCoversFullRange(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	input := hexBytes(t, "83010203")
	v, n, sm, err := d.ParseWithSourceMap(input)
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, 4, n)

	root, ok := sm.Lookup("")
	require.True(t, ok)
	require.Equal(t, uint32(0), root.Start)
	require.Equal(t, uint32(4), root.End)
	require.Equal(t, []string{"[0]", "[1]", "[2]"}, root.Children)

	e0, ok := sm.Lookup("[0]")
	require.True(t, ok)
	require.Equal(t, uint32(1), e0.Start)
	require.Equal(t, uint32(2), e0.End)
	require.Equal(t, "uint(1)", e0.TypeTag)
	require.Equal(t, "array(3)", root.TypeTag)
}

func TestParseWithSourceMapSplitsStringHeaderAndContent(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// 6449455446 = text(4) header byte + "IETF" content.
	input := hexBytes(t, "6449455446")
	_, n, sm, err := d.ParseWithSourceMap(input)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	header, ok := sm.Lookup("")
	require.True(t, ok)
	require.True(t, header.IsHeader)
	require.False(t, header.IsContent)
	require.NotNil(t, header.HeaderEnd)
	require.Equal(t, uint32(0), header.Start)
	require.Equal(t, uint32(1), header.End)
	require.Equal(t, uint32(1), *header.HeaderEnd)
	require.Equal(t, "#content", header.ContentPath)
	require.Equal(t, []string{"#content"}, header.Children)

	content, ok := sm.Lookup("#content")
	require.True(t, ok)
	require.True(t, content.IsContent)
	require.False(t, content.IsHeader)
	require.True(t, content.HasParent)
	require.Equal(t, "", content.Parent)
	require.Equal(t, uint32(1), content.Start)
	require.Equal(t, uint32(5), content.End)
	require.Equal(t, `text("IETF")`, content.TypeTag)
}

func TestParseWithSourceMapEmptyStringHasNoContentSplit(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	v, n, sm, err := d.ParseWithSourceMap(hexBytes(t, "60"))
	require.NoError(t, err)
	require.Equal(t, value.Text{V: ""}, v)
	require.Equal(t, 1, n)

	header, ok := sm.Lookup("")
	require.True(t, ok)
	require.False(t, header.IsHeader)
	require.Equal(t, uint32(0), header.Start)
	require.Equal(t, uint32(1), header.End)

	_, ok = sm.Lookup("#content")
	require.False(t, ok)
}

func TestParseBreakOutsideIndefiniteIsError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	_, _, err = d.Parse([]byte{0xFF})
	require.ErrorIs(t, err, errs.ErrBreakMisuse)
}

func TestParseReservedAdditionalInfo(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	_, _, err = d.Parse([]byte{0x1C}) // major 0, ai=28
	require.ErrorIs(t, err, errs.ErrReservedAdditionalInfo)
}

func TestParseNestedIndefiniteChunkMismatch(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// 0x5f (indefinite bytes) followed by a text-string chunk (0x61 ..)
	_, _, err = d.Parse(hexBytes(t, "5f6161ff"))
	require.ErrorIs(t, err, errs.ErrNestedIndefinite)
}

func TestParseTruncatedStringPayloadIsTruncatedError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// text(4) header declares 4 bytes of payload but only 2 are present.
	_, _, err = d.Parse(hexBytes(t, "6449"))
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.NotErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestParseIndefiniteArrayMissingBreakIsTruncatedError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// indefinite array (0x9f) with one unsigned element and no break byte.
	_, _, err = d.Parse(hexBytes(t, "9f01"))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestParseIndefiniteStringMissingBreakIsTruncatedError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// indefinite text string (0x7f) with no chunks and no break byte.
	_, _, err = d.Parse(hexBytes(t, "7f"))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestParseIndefiniteStringChunkPayloadTruncatedIsTruncatedError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// indefinite text string (0x7f) whose first chunk declares length 4 but
	// only "IE" (2 bytes) follows.
	_, _, err = d.Parse(hexBytes(t, "7f644945"))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestParseEmptyInputIsTruncatedError(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	_, _, err = d.Parse([]byte{})
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestParseStrictUTF8RejectsOverlong(t *testing.T) {
	d, err := decoder.New(decoder.WithStrictUTF8(true))
	require.NoError(t, err)

	// text string of length 2, bytes 0xC0 0x80 (overlong encoding of NUL)
	_, _, err = d.Parse([]byte{0x62, 0xC0, 0x80})
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestParseFloat16(t *testing.T) {
	d, err := decoder.New()
	require.NoError(t, err)

	// 1.5 as half-precision: 0x3E00
	v, _, err := d.Parse([]byte{0xF9, 0x3E, 0x00})
	require.NoError(t, err)
	require.Equal(t, value.Float{V: 1.5}, v)
}

func TestParsePermissiveAcceptsNonCanonicalInteger(t *testing.T) {
	strictDec, err := decoder.New(decoder.Strict()...)
	require.NoError(t, err)

	// 0x1818 encodes 24 using the 1-byte form, but 24 could be direct (ai=24
	// is minimally required here actually since 24 > 23, so use a truly
	// non-canonical example: 0x1900FF encodes 255 in 2 bytes although 1
	// byte suffices).
	nonCanonical := []byte{0x19, 0x00, 0xFF}

	_, _, err = strictDec.Parse(nonCanonical)
	require.ErrorIs(t, err, errs.ErrNonCanonical)

	permissiveDec, err := decoder.New(decoder.Permissive()...)
	require.NoError(t, err)

	v, _, err := permissiveDec.Parse(nonCanonical)
	require.NoError(t, err)
	require.Equal(t, value.Unsigned{V: 255}, v)
}
