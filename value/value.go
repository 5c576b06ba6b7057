// Package value defines the decoded CBOR value tree: a sum type over the
// eight CBOR major types, represented the idiomatic Go way as an interface
// with one concrete type per variant (following
// other_examples/aws-smithy-go's cbor.Value shape) rather than a single
// tagged struct. The decoder produces a *tree* of these (always a DAG,
// never cyclic — CBOR has no back-references), the encoder consumes one.
//
// All values are immutable after construction; nothing in this package
// mutates a Value in place once returned from the decoder.
package value

import "math/big"

// Value is implemented by exactly the nine variant types below. It has no
// methods beyond the major-type marker: application code type-switches on
// the concrete type, the same way callers of other_examples' cbor.Value do.
type Value interface {
	// MajorType reports which of the eight CBOR major types produced this
	// value's initial byte. It is always consistent with the concrete Go
	// type: Unsigned.MajorType() is always MajorUnsigned, and so on.
	MajorType() MajorType

	isValue()
}

// Unsigned is a non-negative integer (major type 0), in [0, 2^64-1] when
// Big is nil. Big is populated only via tag-2 bignum promotion for values
// that exceed the native 64-bit range.
type Unsigned struct {
	V   uint64
	Big *big.Int // non-nil only when the value exceeds math.MaxUint64

	// FromBignumTag records that this value was decoded from a tag-2
	// bignum byte string, even when V fits natively. Canonical-mode
	// encoding ignores it (shortest form always wins); non-canonical
	// round-trip mode uses it to re-wrap the value as tag 2 rather than
	// emit a bare integer, so re-encoding a small integer that arrived
	// wrapped in a bignum tag reproduces the original bytes.
	FromBignumTag bool
}

func (Unsigned) MajorType() MajorType { return MajorUnsigned }
func (Unsigned) isValue()             {}

// BigInt materializes the arbitrary-precision value regardless of which
// field is populated.
func (u Unsigned) BigInt() *big.Int {
	if u.Big != nil {
		return new(big.Int).Set(u.Big)
	}

	return new(big.Int).SetUint64(u.V)
}

// Negative is an integer in [-2^64, -1] (major type 1), stored as its true
// value rather than as the wire's -1-n encoding. Int64 is valid when Big is
// nil, i.e. when the true value fits in an int64 (n <= 2^63-1).
type Negative struct {
	Int64 int64
	Big   *big.Int // non-nil when n >= 2^63, i.e. true value < math.MinInt64

	// FromBignumTag mirrors Unsigned.FromBignumTag, for tag 3.
	FromBignumTag bool
}

func (Negative) MajorType() MajorType { return MajorNegative }
func (Negative) isValue()             {}

// BigInt materializes the arbitrary-precision value regardless of which
// field is populated.
func (n Negative) BigInt() *big.Int {
	if n.Big != nil {
		return new(big.Int).Set(n.Big)
	}

	return big.NewInt(n.Int64)
}

// Bytes is a byte string (major type 2). Indefinite and Chunks preserve
// enough metadata for byte-perfect round-trip of indefinite-length input:
// Chunks is non-nil exactly when Indefinite is true, and its concatenation
// equals V.
type Bytes struct {
	V          []byte
	Indefinite bool
	Chunks     [][]byte
}

func (Bytes) MajorType() MajorType { return MajorBytes }
func (Bytes) isValue()             {}

// Text is a UTF-8 text string (major type 3), with the same
// indefinite/chunk metadata as Bytes.
type Text struct {
	V          string
	Indefinite bool
	Chunks     []string
}

func (Text) MajorType() MajorType { return MajorText }
func (Text) isValue()             {}

// Array is an ordered sequence of values (major type 4).
type Array struct {
	Items      []Value
	Indefinite bool
}

func (Array) MajorType() MajorType { return MajorArray }
func (Array) isValue()             {}

// Tag is major type 6: a tag number plus its content subvalue. Plutus is
// populated by the tag engine when Number matches one of the Cardano
// constructor-tag ranges (102, 121-127, 1280-1400).
type Tag struct {
	Number  uint64
	Content Value
	Plutus  *PlutusConstr
}

func (Tag) MajorType() MajorType { return MajorTag }
func (Tag) isValue()             {}

// Float is major type 7's floating-point subset (additional info 25/26/27),
// always widened to float64. The origin width (half/single/double) is not
// preserved in the value; the decoder's source-map TypeTag records it as a
// "float16:", "float32:" or "float64:" prefix.
type Float struct {
	V float64
}

func (Float) MajorType() MajorType { return MajorSimple }
func (Float) isValue()             {}

// Simple is major type 7's non-float subset: the four named simples
// (false/true/null/undefined) plus the raw one-byte-extended form (32-255;
// one-byte-extended codes below 32 are rejected at decode time).
type Simple struct {
	Code SimpleCode
}

func (Simple) MajorType() MajorType { return MajorSimple }
func (Simple) isValue()             {}

// Convenience constructors for the four named simple values.
var (
	False = Simple{Code: SimpleFalse}
	True  = Simple{Code: SimpleTrue}
	Null  = Simple{Code: SimpleNull}
	Undef = Simple{Code: SimpleUndef}
)

// PlutusConstr is the decorated view of a Cardano Plutus constructor tag:
// tags 121-127 and 1280-1400 encode constructor+fields compactly, tag 102
// encodes them explicitly as [uint, array]. See tag.DecodePlutusCompact and
// tag.DecodePlutus102.
type PlutusConstr struct {
	Constructor uint32
	Fields      []Value
}
