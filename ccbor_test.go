package ccbor_test

import (
	"testing"

	"github.com/ada-tools/ccbor"
	"github.com/ada-tools/ccbor/decoder"
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

func TestDecodeDirectPositiveInteger(t *testing.T) {
	v, n, err := ccbor.Decode(hexBytes(t, "1864"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, value.Unsigned{V: 100}, v)
}

func TestDecodeWithSourceMapCoversArray(t *testing.T) {
	v, n, sm, err := ccbor.DecodeWithSourceMap(hexBytes(t, "83010203"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.IsType(t, value.Array{}, v)

	root, ok := sm.Lookup("")
	require.True(t, ok)
	require.Equal(t, 0, int(root.Start))
	require.Equal(t, 4, int(root.End))

	_, ok = sm.Lookup("[0]")
	require.True(t, ok)
}

func TestParseSequenceEmpty(t *testing.T) {
	values, err := ccbor.ParseSequence(nil)
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestParseSequenceThree(t *testing.T) {
	values, err := ccbor.ParseSequence(hexBytes(t, "010203"))
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, value.Unsigned{V: 1}, values[0])
	require.Equal(t, value.Unsigned{V: 3}, values[2])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	out, hex, err := ccbor.Encode(value.Text{V: "IETF"})
	require.NoError(t, err)
	require.Equal(t, "6449455446", hex)

	v, n, err := ccbor.Decode(out)
	require.NoError(t, err)
	require.Equal(t, len(out), n)
	require.Equal(t, value.Text{V: "IETF"}, v)
}

func TestEncodeSequenceDecodeSequence(t *testing.T) {
	out, _, err := ccbor.EncodeSequence([]value.Value{value.Unsigned{V: 1}, value.Unsigned{V: 2}})
	require.NoError(t, err)

	values, err := ccbor.ParseSequence(out)
	require.NoError(t, err)
	require.Len(t, values, 2)
}

func TestPresetsRegistryCoversAllThree(t *testing.T) {
	presets := ccbor.Presets()
	require.Len(t, presets, 3)
	require.Contains(t, presets, "strict")
	require.Contains(t, presets, "cardano")
	require.Contains(t, presets, "permissive")

	for name, build := range presets {
		p := build()
		require.NotEmpty(t, p.Decode, name)
		require.NotEmpty(t, p.Encode, name)
	}
}

// PlutusNothing exercises a full Cardano decode: tag 121 (constructor 0,
// no fields) — the "Maybe.Nothing" shape.
func TestDecodePlutusNothingUnderCardanoPreset(t *testing.T) {
	preset := ccbor.Presets()["cardano"]()

	d, err := decoder.New(preset.Decode...)
	require.NoError(t, err)

	v, _, err := d.Parse(hexBytes(t, "d87980"))
	require.NoError(t, err)

	tag, ok := v.(value.Tag)
	require.True(t, ok)
	require.NotNil(t, tag.Plutus)
	require.Equal(t, uint32(0), tag.Plutus.Constructor)
	require.Empty(t, tag.Plutus.Fields)
}

func TestBignumTag2DecodesToUnsignedBeyondUint64(t *testing.T) {
	v, _, err := ccbor.Decode(hexBytes(t, "c249010000000000000000"))
	require.NoError(t, err)

	u, ok := v.(value.Unsigned)
	require.True(t, ok)
	require.NotNil(t, u.Big)
	require.True(t, u.FromBignumTag)
}
