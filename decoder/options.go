// Package decoder implements the recursive-descent parse side of the
// codec: one pass over a byte slice producing a value.Value tree, with
// optional canonical-form validation, tag-semantics validation, and
// resource limits, following a NumericDecoderConfig/TextDecoderConfig-style
// shape for a stateful, option-configured single-pass decoder.
package decoder

import (
	"fmt"
	"time"

	"github.com/ada-tools/ccbor/internal/options"
	"github.com/ada-tools/ccbor/value"
)

// DupMapKeyMode controls how a decoder reacts to a repeated map key.
type DupMapKeyMode int

const (
	// DupMapKeyAllow keeps every entry (last write wins in the deduplicated
	// view) and records all of them in the all-entries shadow list. This is
	// the default.
	DupMapKeyAllow DupMapKeyMode = iota

	// DupMapKeyWarn behaves like DupMapKeyAllow but also reports every
	// duplicate through the configured DuplicateKeySink.
	DupMapKeyWarn

	// DupMapKeyReject fails decoding at the second occurrence of a key.
	DupMapKeyReject
)

// DuplicateKeyEvent is reported through a DuplicateKeySink when
// DupMapKeyWarn observes a repeated key. Reporting goes through an
// injected sink rather than a global logger, so a caller fully controls
// where duplicate-key warnings end up.
type DuplicateKeyEvent struct {
	Path   string
	Key    value.Value
	Offset int
}

// DuplicateKeySink receives one DuplicateKeyEvent per repeated key observed
// under DupMapKeyWarn. A nil sink silently drops the events.
type DuplicateKeySink func(DuplicateKeyEvent)

// Config holds every option and limit a Decoder is constructed with. It is
// never mutated after New returns; each option runs once during
// construction, following the NumericEncoderConfig pattern.
type Config struct {
	validateCanonical       bool
	allowIndefinite         bool
	dupMapKey               DupMapKeyMode
	validateUTF8Strict      bool
	validateSetUniqueness   bool
	validateTagSemantics    bool
	validatePlutusSemantics bool

	maxInputSize    int
	maxOutputSize   int
	maxStringLength int
	maxArrayLength  int
	maxMapSize      int
	maxDepth        int
	maxTagDepth     int
	maxBignumBytes  int
	maxParseTime    time.Duration

	duplicateKeySink DuplicateKeySink
}

// Option configures a Config at construction time.
type Option = options.Option[*Config]

// Default limits. These are generous enough to never trip on well-formed
// input of ordinary size, while still bounding worst-case allocation for a
// hostile input.
const (
	DefaultMaxInputSize    = 64 << 20 // 64 MiB
	DefaultMaxOutputSize   = 64 << 20
	DefaultMaxStringLength = 16 << 20
	DefaultMaxArrayLength  = 1 << 20
	DefaultMaxMapSize      = 1 << 20
	DefaultMaxDepth        = 512
	DefaultMaxTagDepth     = 512
	DefaultMaxBignumBytes  = 1 << 16
)

func newConfig() *Config {
	return &Config{
		allowIndefinite: true,
		dupMapKey:       DupMapKeyAllow,

		maxInputSize:    DefaultMaxInputSize,
		maxOutputSize:   DefaultMaxOutputSize,
		maxStringLength: DefaultMaxStringLength,
		maxArrayLength:  DefaultMaxArrayLength,
		maxMapSize:      DefaultMaxMapSize,
		maxDepth:        DefaultMaxDepth,
		maxTagDepth:     DefaultMaxTagDepth,
		maxBignumBytes:  DefaultMaxBignumBytes,
	}
}

// NewConfig builds a Config from the given options, applying them in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCanonicalValidation toggles validate_canonical: rejects non-shortest
// integer/length encodings, unsorted or duplicate map keys, and
// indefinite forms.
func WithCanonicalValidation(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.validateCanonical = enabled
		if enabled {
			c.allowIndefinite = false
			c.dupMapKey = DupMapKeyReject
		}
	})
}

// WithIndefiniteLength explicitly overrides whether additional_info==31 is
// accepted on major types 2-5. WithCanonicalValidation(true) forces this to
// false, and applying WithIndefiniteLength(true) after it has no effect —
// canonical mode always implies definite-length-only.
func WithIndefiniteLength(allowed bool) Option {
	return options.NoError(func(c *Config) {
		c.allowIndefinite = allowed && !c.validateCanonical
	})
}

// WithDuplicateMapKeyMode sets the dup_map_key policy.
func WithDuplicateMapKeyMode(mode DupMapKeyMode) Option {
	return options.NoError(func(c *Config) {
		c.dupMapKey = mode
	})
}

// WithDuplicateKeySink installs the side channel DupMapKeyWarn reports
// through.
func WithDuplicateKeySink(sink DuplicateKeySink) Option {
	return options.NoError(func(c *Config) {
		c.duplicateKeySink = sink
	})
}

// WithStrictUTF8 toggles validate_utf8_strict.
func WithStrictUTF8(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.validateUTF8Strict = enabled
	})
}

// WithSetUniqueness toggles validate_set_uniqueness (tag 258).
func WithSetUniqueness(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.validateSetUniqueness = enabled
	})
}

// WithTagSemantics toggles validate_tag_semantics (standard tags 0, 1, 4, 5
// and 32-36).
func WithTagSemantics(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.validateTagSemantics = enabled
	})
}

// WithPlutusSemantics toggles validate_plutus_semantics (tags 102,
// 121-127, 1280-1400).
func WithPlutusSemantics(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.validatePlutusSemantics = enabled
	})
}

// WithMaxInputSize caps the total input buffer length.
func WithMaxInputSize(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxInputSize = n })
}

// WithMaxOutputSize caps the cumulative bytes allocated for decoded
// byte/text string payloads.
func WithMaxOutputSize(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxOutputSize = n })
}

// WithMaxStringLength caps any single byte/text string's length.
func WithMaxStringLength(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxStringLength = n })
}

// WithMaxArrayLength caps any single array's element count.
func WithMaxArrayLength(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxArrayLength = n })
}

// WithMaxMapSize caps any single map's entry count.
func WithMaxMapSize(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxMapSize = n })
}

// WithMaxDepth caps array/map nesting depth.
func WithMaxDepth(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxDepth = n })
}

// WithMaxTagDepth caps tag nesting depth, tracked separately from
// WithMaxDepth since a chain of nested tags can be arbitrarily deep
// without ever touching an array or map.
func WithMaxTagDepth(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxTagDepth = n })
}

// WithMaxBignumBytes caps a tag-2/3 byte-string payload length.
func WithMaxBignumBytes(n int) Option {
	return limitOption(n, func(c *Config, n int) { c.maxBignumBytes = n })
}

// WithMaxParseTime bounds wall-clock decode time, polled at each recursion
// entry.
func WithMaxParseTime(d time.Duration) Option {
	return options.NoError(func(c *Config) {
		c.maxParseTime = d
	})
}

func limitOption(n int, set func(*Config, int)) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("decoder: limit must be non-negative, got %d", n)
		}
		set(c, n)
		return nil
	})
}

// Strict returns the "strict" preset: canonical validation, no indefinite
// forms, duplicate keys rejected, strict UTF-8, and all semantic
// validation enabled.
func Strict(extra ...Option) []Option {
	return append([]Option{
		WithCanonicalValidation(true),
		WithStrictUTF8(true),
		WithSetUniqueness(true),
		WithTagSemantics(true),
		WithPlutusSemantics(true),
	}, extra...)
}

// Cardano returns the "Cardano" preset: the library defaults plus
// validate_plutus_semantics=true.
func Cardano(extra ...Option) []Option {
	return append([]Option{
		WithPlutusSemantics(true),
	}, extra...)
}

// Permissive returns the "permissive" preset: every validation toggle
// explicitly disabled, indefinite-length forms allowed.
func Permissive(extra ...Option) []Option {
	return append([]Option{
		WithCanonicalValidation(false),
		WithIndefiniteLength(true),
		WithDuplicateMapKeyMode(DupMapKeyAllow),
		WithStrictUTF8(false),
		WithSetUniqueness(false),
		WithTagSemantics(false),
		WithPlutusSemantics(false),
	}, extra...)
}
