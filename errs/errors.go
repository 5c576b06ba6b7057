// Package errs defines the closed set of error sentinels raised by the
// ccbor codec, together with the typed wrappers that attach a byte offset
// (decode side) or a value-tree path (encode side) to a sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error surfaced by the decoder or encoder wraps one
// of these via fmt.Errorf("...: %w", ErrX) so that callers can always use
// errors.Is against the kind, regardless of the dynamic context attached.
var (
	// ErrInvalidHex is returned when the input to a hex-to-bytes helper is
	// not valid hex of even length.
	ErrInvalidHex = errors.New("ccbor: invalid hex input")

	// ErrOutOfBounds is returned when a read would exceed the input buffer.
	ErrOutOfBounds = errors.New("ccbor: read out of bounds")

	// ErrTruncated is returned when an indefinite-length container lacks its
	// break code, or a definite-length item is missing trailing bytes.
	ErrTruncated = errors.New("ccbor: truncated item")

	// ErrReservedAdditionalInfo is returned for additional-info values 28-30,
	// or ai=24 paired with a reserved one-byte simple value.
	ErrReservedAdditionalInfo = errors.New("ccbor: reserved additional info")

	// ErrBreakMisuse is returned when a break code (0xFF) appears outside an
	// indefinite-length container.
	ErrBreakMisuse = errors.New("ccbor: break code outside indefinite container")

	// ErrNestedIndefinite is returned when a chunk inside an indefinite
	// string is itself indefinite, or does not match the container's major
	// type.
	ErrNestedIndefinite = errors.New("ccbor: nested indefinite chunk")

	// ErrInvalidUTF8 is returned when strict UTF-8 validation fails on a
	// text-string payload.
	ErrInvalidUTF8 = errors.New("ccbor: invalid utf-8 text string")

	// ErrNonCanonical is returned when canonical-mode validation finds a
	// non-minimum-width integer/length, unsorted map keys, a duplicate key,
	// or an indefinite-length form.
	ErrNonCanonical = errors.New("ccbor: non-canonical encoding")

	// ErrDuplicateMapKey is returned when dup_map_key=reject and a repeated
	// key is seen.
	ErrDuplicateMapKey = errors.New("ccbor: duplicate map key")

	// ErrTagSemantics is returned when a tag's content violates its
	// declared structural rule.
	ErrTagSemantics = errors.New("ccbor: tag content violates semantics")

	// ErrSetUniqueness is returned when tag-258 (set) elements are not
	// structurally distinct.
	ErrSetUniqueness = errors.New("ccbor: set elements are not unique")

	// ErrBignumTooLarge is returned when a tag-2/tag-3 byte string payload
	// exceeds MaxBignumBytes.
	ErrBignumTooLarge = errors.New("ccbor: bignum payload too large")

	// ErrDepthExceeded is returned when container nesting exceeds MaxDepth.
	ErrDepthExceeded = errors.New("ccbor: max depth exceeded")

	// ErrTagDepthExceeded is returned when tag nesting exceeds MaxTagDepth.
	ErrTagDepthExceeded = errors.New("ccbor: max tag depth exceeded")

	// ErrSizeExceeded is returned when any configured size/length limit is
	// tripped.
	ErrSizeExceeded = errors.New("ccbor: size limit exceeded")

	// ErrTimeout is returned when MaxParseTime is exceeded.
	ErrTimeout = errors.New("ccbor: parse time exceeded")

	// ErrUnsupportedValue is returned when the encoder is given a value it
	// cannot serialize.
	ErrUnsupportedValue = errors.New("ccbor: unsupported value")
)

// DecodeError wraps a sentinel with the byte offset where it was detected.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return errOffsetString(e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError builds a DecodeError anchored at the given byte offset.
func NewDecodeError(offset int, err error) *DecodeError {
	return &DecodeError{Offset: offset, Err: err}
}

// EncodeError wraps a sentinel with the value-tree path where it was
// detected (root path is the empty string, matching sourcemap path
// grammar).
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "ccbor: encode at root: " + e.Err.Error()
	}

	return "ccbor: encode at " + e.Path + ": " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }

// NewEncodeError builds an EncodeError anchored at the given path.
func NewEncodeError(path string, err error) *EncodeError {
	return &EncodeError{Path: path, Err: err}
}

func errOffsetString(offset int, err error) string {
	return fmt.Sprintf("ccbor: at offset %d: %s", offset, err.Error())
}
