package primitive

import "math"

// Float16ToFloat64 performs the bit-level conversion of an IEEE-754
// half-precision float (as its raw 16-bit pattern) to a float64, including
// subnormals, infinities and NaN. CBOR major type 7 additional-info 25
// decodes through this.
func Float16ToFloat64(bits uint16) float64 {
	sign := uint64(bits>>15) & 0x1
	exp := uint64(bits>>10) & 0x1F
	frac := uint64(bits) & 0x3FF

	var f64bits uint64

	switch exp {
	case 0:
		if frac == 0 {
			f64bits = sign << 63
		} else {
			// subnormal half -> normalize into a float64
			e := 0
			m := frac
			for m&0x400 == 0 {
				m <<= 1
				e--
			}
			m &= 0x3FF
			exp64 := uint64(int64(1023-15+1+e))
			f64bits = (sign << 63) | (exp64 << 52) | (m << 42)
		}
	case 0x1F:
		if frac == 0 {
			f64bits = (sign << 63) | (0x7FF << 52)
		} else {
			f64bits = (sign << 63) | (0x7FF << 52) | (frac << 42) | 1
		}
	default:
		exp64 := exp - 15 + 1023
		f64bits = (sign << 63) | (exp64 << 52) | (frac << 42)
	}

	return math.Float64frombits(f64bits)
}

// Float64ToFloat16 attempts to represent f exactly as an IEEE-754
// half-precision float. ok is false when f cannot round-trip through
// half precision (including when it would overflow to infinity from a
// finite input, or lose mantissa bits).
func Float64ToFloat16(f float64) (bits uint16, ok bool) {
	if math.IsNaN(f) {
		// canonical quiet NaN, per the documented NaN-on-encode choice.
		return 0x7E00, true
	}

	if math.IsInf(f, 1) {
		return 0x7C00, true
	}

	if math.IsInf(f, -1) {
		return 0xFC00, true
	}

	bits64 := math.Float64bits(f)
	sign := uint16(bits64>>63) & 0x1
	exp := int64(bits64>>52)&0x7FF - 1023
	frac := bits64 & ((1 << 52) - 1)

	if f == 0 {
		return sign << 15, true
	}

	// normalized half range: exponent in [-14, 15]
	if exp >= -14 && exp <= 15 {
		if frac&((1<<42)-1) != 0 {
			return 0, false
		}

		halfExp := uint16(exp + 15)
		halfFrac := uint16(frac >> 42)

		return (sign << 15) | (halfExp << 10) | halfFrac, true
	}

	// subnormal half range: exponent in [-24, -15]
	if exp >= -24 && exp < -14 {
		shift := uint(-14 - exp)
		fullFrac := (uint64(1) << 52) | frac
		if fullFrac&((uint64(1)<<(42+shift))-1) != 0 {
			return 0, false
		}

		halfFrac := uint16(fullFrac >> (42 + shift))

		return (sign << 15) | halfFrac, true
	}

	return 0, false
}

// Float32ExactRoundTrip reports whether f, viewed as a float64, can be
// represented exactly as a float32 (used by the encoder's shortest-float
// search for the single-precision step).
func Float32ExactRoundTrip(f float64) (f32 float32, ok bool) {
	f32 = float32(f)

	return f32, float64(f32) == f
}
