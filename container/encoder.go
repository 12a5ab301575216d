package container

import (
	"fmt"

	"github.com/arloliu/rodb/encoding"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/internal/options"
	"github.com/arloliu/rodb/section"
	"github.com/arloliu/rodb/value"
)

// Encoder encodes document trees into RODB containers.
//
// The Encoder is stateless apart from its configuration. Each Encode call uses
// its own pooled scratch buffer, so one Encoder may serve many goroutines.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates a new Encoder.
//
// Parameters:
//   - opts: Optional configuration (compression, nesting limit)
//
// Returns:
//   - *Encoder: Encoder ready for use
//   - error: Configuration error if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.setCodec(); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// Encode encodes root into a container.
//
// The result is a freshly allocated buffer holding the container header and the
// root chunk, compressed as a whole when compression is configured.
//
// Returns:
//   - []byte: The container bytes, owned by the caller
//   - error: ErrInvalidRootType when root is not an array or a map, or any
//     error of encoding.ChunkEncoder.Encode; no bytes are returned on error
func (e *Encoder) Encode(root value.Value) ([]byte, error) {
	if err := ValidateRoot(root); err != nil {
		return nil, err
	}

	ce := encoding.NewChunkEncoder(e.maxDepth)
	defer ce.Release()

	if err := ce.Encode(root); err != nil {
		return nil, err
	}

	out := make([]byte, 0, section.ContainerHeaderSize+ce.Len())
	out = section.NewContainerHeader().AppendTo(out)
	out = append(out, ce.Bytes()...)

	compressed, err := e.codec.Compress(out)
	if err != nil {
		return nil, fmt.Errorf("failed to compress container with %s: %w", e.compression, err)
	}

	return compressed, nil
}

// ValidateRoot returns ErrInvalidRootType unless root is an Array or a Map.
func ValidateRoot(root value.Value) error {
	if value.IsContainer(root) {
		return nil
	}

	if root == nil {
		return fmt.Errorf("%w: got nil", errs.ErrInvalidRootType)
	}

	return fmt.Errorf("%w: got %s", errs.ErrInvalidRootType, root.Kind())
}
