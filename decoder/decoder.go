package decoder

import (
	"fmt"
	"time"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/sourcemap"
	"github.com/ada-tools/ccbor/value"
)

// Decoder parses CBOR-encoded bytes into a value.Value tree. A Decoder is
// immutable once built by New and safe to reuse (including concurrently)
// across any number of Parse calls, since all mutable state lives in the
// per-call decodeState.
type Decoder struct {
	cfg *Config
}

// New builds a Decoder from the given options.
func New(opts ...Option) (*Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// decodeState carries the mutable cursor, recursion counters, and optional
// source-map builder for a single Parse call.
type decodeState struct {
	buf      []byte
	cfg      *Config
	depth    int
	tagDepth int
	used     int // cumulative bytes reserved for decoded byte/text payloads

	deadline    time.Time
	hasDeadline bool

	sm *sourcemap.Builder // nil unless Parse was asked to build one
}

func (d *Decoder) newState(input []byte) (*decodeState, error) {
	if d.cfg.maxInputSize > 0 && len(input) > d.cfg.maxInputSize {
		return nil, errs.NewDecodeError(0, fmt.Errorf("%w: input length %d exceeds max_input_size %d", errs.ErrSizeExceeded, len(input), d.cfg.maxInputSize))
	}

	st := &decodeState{buf: input, cfg: d.cfg}
	if d.cfg.maxParseTime > 0 {
		st.hasDeadline = true
		st.deadline = time.Now().Add(d.cfg.maxParseTime)
	}

	return st, nil
}

// Parse consumes exactly one data item starting at offset 0 and returns it
// together with the number of bytes consumed.
func (d *Decoder) Parse(input []byte) (value.Value, int, error) {
	st, err := d.newState(input)
	if err != nil {
		return nil, 0, err
	}

	v, pos, err := st.decodeItem(0, "", "", false)
	if err != nil {
		return nil, 0, err
	}

	return v, pos, nil
}

// ParseWithSourceMap behaves like Parse but additionally builds a
// sourcemap.Map tracking every decoded subvalue's originating byte range.
func (d *Decoder) ParseWithSourceMap(input []byte) (value.Value, int, *sourcemap.Map, error) {
	st, err := d.newState(input)
	if err != nil {
		return nil, 0, nil, err
	}

	st.sm = sourcemap.NewBuilder()

	v, pos, err := st.decodeItem(0, "", "", false)
	if err != nil {
		return nil, 0, nil, err
	}

	return v, pos, st.sm.Build(), nil
}

// ParseSequence implements RFC 8742: it consumes repeated top-level items
// until the buffer is exhausted. A bare break code at the top level is an
// error, same as within Parse.
func (d *Decoder) ParseSequence(input []byte) ([]value.Value, error) {
	st, err := d.newState(input)
	if err != nil {
		return nil, err
	}

	var items []value.Value

	pos := 0
	for pos < len(st.buf) {
		v, next, err := st.decodeItem(pos, "", "", false)
		if err != nil {
			return nil, err
		}

		items = append(items, v)
		pos = next
	}

	return items, nil
}

func (st *decodeState) checkDeadline(pos int) error {
	if !st.hasDeadline {
		return nil
	}

	if time.Now().After(st.deadline) {
		return errs.NewDecodeError(pos, fmt.Errorf("%w: exceeded %s", errs.ErrTimeout, st.cfg.maxParseTime))
	}

	return nil
}

func (st *decodeState) reserveOutput(pos, n int) error {
	if st.cfg.maxOutputSize <= 0 {
		return nil
	}

	st.used += n
	if st.used > st.cfg.maxOutputSize {
		return errs.NewDecodeError(pos, fmt.Errorf("%w: decoded payload total %d exceeds max_output_size %d", errs.ErrSizeExceeded, st.used, st.cfg.maxOutputSize))
	}

	return nil
}
