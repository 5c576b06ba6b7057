// Package cborutil provides small standalone helpers that sit alongside
// the decoder/encoder but are not themselves part of the codec's parse or
// serialize path: a single-line human label for a decoded value. The
// decoder calls DiagnosticLabel to build most of the TypeTag values it
// records on sourcemap.Entry once a value has been fully decoded; it is
// also useful directly in tests asserting on decoded shape.
package cborutil

import (
	"fmt"

	"github.com/ada-tools/ccbor/value"
)

// DiagnosticLabel renders a single-line, human-readable label for v. It is
// not a diagnostic-notation encoder (CBOR's EDN text format is out of
// scope) — just a short tag naming the value's variant and, where useful,
// enough of its payload to tell two instances of the same variant apart at
// a glance. A nil v renders as "nil".
func DiagnosticLabel(v value.Value) string {
	switch tv := v.(type) {
	case value.Unsigned:
		if tv.Big != nil {
			return fmt.Sprintf("uint(%s)", tv.Big.String())
		}
		return fmt.Sprintf("uint(%d)", tv.V)
	case value.Negative:
		return fmt.Sprintf("nint(%s)", tv.BigInt().String())
	case value.Bytes:
		if tv.Indefinite {
			return fmt.Sprintf("bytes(%d bytes, indefinite)", len(tv.V))
		}
		return fmt.Sprintf("bytes(%d bytes)", len(tv.V))
	case value.Text:
		return fmt.Sprintf("text(%q)", truncate(tv.V, 32))
	case value.Array:
		return fmt.Sprintf("array(%d)", len(tv.Items))
	case *value.Map:
		return fmt.Sprintf("map(%d)", len(tv.Entries))
	case value.Tag:
		if tv.Plutus != nil {
			return fmt.Sprintf("tag(%d,constr=%d,fields=%d)", tv.Number, tv.Plutus.Constructor, len(tv.Plutus.Fields))
		}
		return fmt.Sprintf("tag(%d)", tv.Number)
	case value.Float:
		return fmt.Sprintf("float(%v)", tv.V)
	case value.Simple:
		return simpleLabel(tv.Code)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("unknown(%T)", v)
	}
}

func simpleLabel(code value.SimpleCode) string {
	switch code {
	case value.SimpleFalse:
		return "false"
	case value.SimpleTrue:
		return "true"
	case value.SimpleNull:
		return "null"
	case value.SimpleUndef:
		return "undefined"
	default:
		return fmt.Sprintf("simple(%d)", code)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
