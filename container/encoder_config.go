package container

import (
	"fmt"

	"github.com/arloliu/rodb/compress"
	"github.com/arloliu/rodb/encoding"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/format"
	"github.com/arloliu/rodb/internal/options"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	compression format.CompressionType
	codec       compress.Codec
	maxDepth    int
}

// NewEncoderConfig returns the default configuration: no compression and
// encoding.DefaultMaxDepth.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionNone,
		maxDepth:    encoding.DefaultMaxDepth,
	}
}

// setCompression sets the compression applied to the finished container.
func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.compression = comp
		return nil
	default:
		return fmt.Errorf("%w: %v", errs.ErrInvalidCompression, comp)
	}
}

// setMaxDepth sets the nesting limit.
func (c *EncoderConfig) setMaxDepth(depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidMaxDepth, depth)
	}
	c.maxDepth = depth

	return nil
}

// setCodec resolves the codec for the configured compression type.
func (c *EncoderConfig) setCodec() error {
	codec, err := compress.CreateCodec(c.compression, "container")
	if err != nil {
		return fmt.Errorf("failed to create container codec: %w", err)
	}
	c.codec = codec

	return nil
}

// Compression returns the configured compression type.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.compression
}

// MaxDepth returns the configured nesting limit.
func (c *EncoderConfig) MaxDepth() int {
	return c.maxDepth
}

// EncoderOption is a functional option for configuring Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression configures compression of the finished container.
// Available compression types: format.CompressionNone, format.CompressionZstd,
// format.CompressionS2 and format.CompressionLZ4.
// Default is format.CompressionNone, which keeps the container directly seekable.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setCompression(comp)
	})
}

// WithMaxDepth limits how deeply arrays and maps may nest. The limit must be positive.
// Default is encoding.DefaultMaxDepth.
func WithMaxDepth(depth int) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setMaxDepth(depth)
	})
}
