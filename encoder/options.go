// Package encoder implements the encode side of the codec: walking a
// value.Value tree and producing its CBOR byte representation, with a
// NumericEncoderConfig-style options layer and internal/pool-backed
// buffer reuse.
package encoder

import (
	"fmt"

	"github.com/ada-tools/ccbor/internal/options"
)

// Config holds the options an Encoder is constructed with.
type Config struct {
	canonical           bool
	allowIndefinite     bool
	rejectDuplicateKeys bool

	maxDepth      int
	maxOutputSize int
}

// Option configures a Config at construction time.
type Option = options.Option[*Config]

// DefaultMaxDepth and DefaultMaxOutputSize mirror the decoder's defaults;
// an encoder walks a tree that was typically itself produced by this
// module's own Decoder, so the same bounds are a sensible default guard
// against a hand-built, pathologically deep Value tree.
const (
	DefaultMaxDepth      = 512
	DefaultMaxOutputSize = 64 << 20
)

func newConfig() *Config {
	return &Config{
		allowIndefinite: true,
		maxDepth:        DefaultMaxDepth,
		maxOutputSize:   DefaultMaxOutputSize,
	}
}

// NewConfig builds a Config from the given options, applying them in
// order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCanonical toggles canonical-mode encoding: shortest integer/length
// widths, sorted unique map keys, no indefinite forms.
func WithCanonical(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.canonical = enabled
		if enabled {
			c.allowIndefinite = false
			c.rejectDuplicateKeys = true
		}
	})
}

// WithIndefinite controls whether Bytes/Text/Array values that carry an
// Indefinite marker are re-emitted in indefinite form. WithCanonical(true)
// forces this off.
func WithIndefinite(allowed bool) Option {
	return options.NoError(func(c *Config) {
		c.allowIndefinite = allowed
	})
}

// WithRejectDuplicateKeys controls whether encoding a map whose entries
// (by encoded key bytes) contain a duplicate is an error. WithCanonical(true)
// forces this on.
func WithRejectDuplicateKeys(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.rejectDuplicateKeys = enabled
	})
}

// WithMaxDepth caps array/map/tag nesting depth during encode.
func WithMaxDepth(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("encoder: max depth must be non-negative, got %d", n)
		}
		c.maxDepth = n
		return nil
	})
}

// WithMaxOutputSize caps the total number of bytes an Encode call may
// produce.
func WithMaxOutputSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("encoder: max output size must be non-negative, got %d", n)
		}
		c.maxOutputSize = n
		return nil
	})
}

// Canonical returns the preset for the round-trip-under-canonical
// property: shortest forms, sorted unique keys, no indefinite markers.
func Canonical(extra ...Option) []Option {
	return append([]Option{WithCanonical(true)}, extra...)
}

// Preserve returns the preset for the round-trip-with-preservation
// property: non-canonical, indefinite markers and duplicate-key shadow
// lists honored verbatim.
func Preserve(extra ...Option) []Option {
	return append([]Option{
		WithCanonical(false),
		WithIndefinite(true),
		WithRejectDuplicateKeys(false),
	}, extra...)
}
