package encoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/errs"
	"github.com/ada-tools/ccbor/internal/pool"
	"github.com/ada-tools/ccbor/internal/primitive"
	"github.com/ada-tools/ccbor/value"
)

// Encoder walks a value.Value tree and produces its CBOR byte
// representation. An Encoder is immutable once built by New and safe to
// reuse (including concurrently) across any number of Encode calls; all
// mutable state lives in the per-call encodeState.
type Encoder struct {
	cfg *Config
}

// New builds an Encoder from the given options.
func New(opts ...Option) (*Encoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

type encodeState struct {
	cfg   *Config
	buf   *pool.ByteBuffer
	depth int
}

func (st *encodeState) checkOutputSize(path string) error {
	if st.cfg.maxOutputSize > 0 && st.buf.Len() > st.cfg.maxOutputSize {
		return errs.NewEncodeError(path, fmt.Errorf("%w: output %d bytes exceeds max_output_size %d", errs.ErrSizeExceeded, st.buf.Len(), st.cfg.maxOutputSize))
	}

	return nil
}

// Encode emits exactly one top-level data item for v, returning both its
// raw bytes and lowercase hex rendering.
func (e *Encoder) Encode(v value.Value) ([]byte, string, error) {
	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	st := &encodeState{cfg: e.cfg, buf: buf}
	if err := st.encodeValue(v, ""); err != nil {
		return nil, "", err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, primitive.BytesToHex(out), nil
}

// EncodeSequence implements RFC 8742: it concatenates each value's encoding
// with no delimiter between items.
func (e *Encoder) EncodeSequence(values []value.Value) ([]byte, string, error) {
	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	st := &encodeState{cfg: e.cfg, buf: buf}
	for i, v := range values {
		if err := st.encodeValue(v, fmt.Sprintf("[seq:%d]", i)); err != nil {
			return nil, "", err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, primitive.BytesToHex(out), nil
}
