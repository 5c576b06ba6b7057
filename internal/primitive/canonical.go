package primitive

// MajorType and AdditionalInfo are intentionally untyped (uint8) at this
// layer; the value package attaches the CBOR-level MajorType enum.

// ExtractHeader splits a CBOR initial byte into its major-type (high 3
// bits) and additional-info (low 5 bits) fields.
func ExtractHeader(b byte) (majorType uint8, additionalInfo uint8) {
	return b >> 5, b & 0x1F
}

// MinimalAdditionalInfo returns the additional-info value (0-23, 24, 25, 26,
// or 27) that a canonical encoder would choose for the given argument,
// i.e. the narrowest of {direct, 1, 2, 4, 8} byte widths that fits val.
func MinimalAdditionalInfo(val uint64) uint8 {
	switch {
	case val < 24:
		return uint8(val)
	case val <= 0xFF:
		return 24
	case val <= 0xFFFF:
		return 25
	case val <= 0xFFFFFFFF:
		return 26
	default:
		return 27
	}
}

// ArgumentWidth returns the number of argument bytes that follow the initial
// byte for a given additional-info value: 0 for ai in [0,23], 1/2/4/8 for
// ai in {24,25,26,27}. It returns -1 for ai in {28,29,30} (reserved) and for
// ai==31 (indefinite/break, which carries no fixed-width argument).
func ArgumentWidth(ai uint8) int {
	switch {
	case ai <= 23:
		return 0
	case ai == 24:
		return 1
	case ai == 25:
		return 2
	case ai == 26:
		return 4
	case ai == 27:
		return 8
	default:
		return -1
	}
}

// IsCanonicalInteger reports whether additionalInfo is the minimal encoding
// of val, i.e. ai == MinimalAdditionalInfo(val). It is used to validate
// major types 0, 1 and 6 (tag numbers), and the length prefixes of major
// types 2-5.
func IsCanonicalInteger(val uint64, additionalInfo uint8) bool {
	return additionalInfo == MinimalAdditionalInfo(val)
}
