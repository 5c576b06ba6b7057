// Package ccbor is a bidirectional codec for RFC 8949 CBOR (Concise Binary
// Object Representation) and RFC 8742 CBOR Sequences, with first-class
// support for the Cardano/Plutus dialect's bignum and constructor tags and
// an optional source map recording every decoded subvalue's originating
// byte range.
//
// The top-level functions in this file are thin convenience wrappers
// around the decoder and encoder packages' zero-value presets; anything
// needing custom limits or validation toggles should construct a
// *decoder.Decoder / *encoder.Encoder directly via decoder.New /
// encoder.New.
//
//	v, n, err := ccbor.Decode(input)
//	out, hex, err := ccbor.Encode(v)
//
// Three presets are available through both the decoder/encoder packages
// directly (decoder.Strict/Cardano/Permissive, encoder.Canonical/Preserve)
// and through Presets(), which exposes them as a uniform registry.
package ccbor
