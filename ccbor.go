package ccbor

import (
	"github.com/ada-tools/ccbor/decoder"
	"github.com/ada-tools/ccbor/encoder"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/value"
)

// Decode parses exactly one top-level CBOR data item from input using the
// decoder package's zero-value defaults (every validation toggle off,
// indefinite-length forms accepted, no resource limits beyond the
// defaults). It returns the decoded value and the number of bytes
// consumed.
func Decode(input []byte) (value.Value, int, error) {
	d, err := decoder.New()
	if err != nil {
		return nil, 0, err
	}

	return d.Parse(input)
}

// DecodeWithSourceMap behaves like Decode but also returns the byte-range
// index of every decoded subvalue.
func DecodeWithSourceMap(input []byte) (value.Value, int, *sourcemap.Map, error) {
	d, err := decoder.New()
	if err != nil {
		return nil, 0, nil, err
	}

	return d.ParseWithSourceMap(input)
}

// ParseSequence parses input as an RFC 8742 CBOR Sequence: zero or more
// concatenated top-level data items with no delimiter between them.
func ParseSequence(input []byte) ([]value.Value, error) {
	d, err := decoder.New()
	if err != nil {
		return nil, err
	}

	return d.ParseSequence(input)
}

// Encode serializes v using the encoder package's zero-value defaults
// (non-canonical, indefinite forms preserved, duplicate keys allowed). It
// returns both the raw bytes and their lowercase hex rendering.
func Encode(v value.Value) ([]byte, string, error) {
	e, err := encoder.New()
	if err != nil {
		return nil, "", err
	}

	return e.Encode(v)
}

// EncodeSequence serializes values as an RFC 8742 CBOR Sequence.
func EncodeSequence(values []value.Value) ([]byte, string, error) {
	e, err := encoder.New()
	if err != nil {
		return nil, "", err
	}

	return e.EncodeSequence(values)
}

// Preset bundles the decoder and encoder option slices that make up one
// named configuration, so a caller (or a table-driven test) can iterate
// every preset uniformly instead of calling three separately-named
// constructor pairs.
type Preset struct {
	Decode []decoder.Option
	Encode []encoder.Option
}

// Presets returns every named preset this module ships: "strict" (canonical
// validation on decode, canonical shortest-form output on encode),
// "cardano" (Plutus tag semantics validated on decode, non-canonical
// preservation on encode), and "permissive" (every validation toggle off,
// preservation on encode).
func Presets() map[string]func() Preset {
	return map[string]func() Preset{
		"strict": func() Preset {
			return Preset{Decode: decoder.Strict(), Encode: encoder.Canonical()}
		},
		"cardano": func() Preset {
			return Preset{Decode: decoder.Cardano(), Encode: encoder.Preserve()}
		},
		"permissive": func() Preset {
			return Preset{Decode: decoder.Permissive(), Encode: encoder.Preserve()}
		},
	}
}
