// Package loader builds value.Value trees from source documents.
//
// Supported formats are YAML, JSON (comments and trailing commas allowed),
// MessagePack and CBOR. Loaders only produce the closed value variant set:
// nulls, timestamps, binary strings, tags and other values without a RODB
// counterpart are rejected with errs.ErrUnsupportedType, and integers outside
// the int32 range with errs.ErrIntOutOfRange. Floats are narrowed to float32.
//
// Map keys are converted like any other value. A non-string key is therefore
// kept in the tree and rejected later by the encoder with errs.ErrNonStringMapKey.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/rodb/encoding"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/internal/options"
	"github.com/arloliu/rodb/value"
)

// DefaultMaxDepth is the deepest nesting of arrays and maps a loader accepts
// unless WithMaxDepth says otherwise. It matches the encoder default.
const DefaultMaxDepth = encoding.DefaultMaxDepth

// Config holds loader settings.
type Config struct {
	maxDepth int
}

// NewConfig returns the default loader configuration.
func NewConfig() *Config {
	return &Config{maxDepth: DefaultMaxDepth}
}

// MaxDepth returns the nesting limit.
func (c *Config) MaxDepth() int {
	return c.maxDepth
}

func (c *Config) checkDepth(depth int) error {
	if depth >= c.maxDepth {
		return fmt.Errorf("%w: limit %d", errs.ErrMaxDepthExceeded, c.maxDepth)
	}

	return nil
}

// Option configures a loader.
type Option = options.Option[*Config]

// WithMaxDepth sets the nesting limit. Pass the encoder's limit so that a
// document the loader accepts is not rejected later for depth alone.
func WithMaxDepth(depth int) Option {
	return options.New(func(cfg *Config) error {
		if depth <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidMaxDepth, depth)
		}
		cfg.maxDepth = depth

		return nil
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Format identifies a source document format.
type Format uint8

const (
	FormatYAML Format = iota + 1
	FormatJSON
	FormatMsgPack
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatMsgPack:
		return "msgpack"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name or file extension (without the dot) into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "msgpack", "mpk", "mp":
		return FormatMsgPack, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, name)
	}
}

// FormatFromPath guesses the format from the file extension of path.
// Unknown extensions, and paths without one, default to YAML.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}

	return FormatYAML
}

// Load parses data in the given format.
func Load(f Format, data []byte, opts ...Option) (value.Value, error) {
	switch f {
	case FormatYAML:
		return LoadYAML(data, opts...)
	case FormatJSON:
		return LoadJSON(data, opts...)
	case FormatMsgPack:
		return LoadMsgPack(data, opts...)
	case FormatCBOR:
		return LoadCBOR(data, opts...)
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownFormat, f)
	}
}
