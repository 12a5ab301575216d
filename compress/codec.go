package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/format"
	"github.com/arloliu/rodb/section"
)

// Compressor compresses a complete RODB container.
//
// The compressor treats its input as opaque bytes; it is applied after the
// container has been fully encoded.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Input slice is not modified
	//   - Returned slice is owned by the caller, except for the no-op codec
	//     which returns its input unchanged
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// Error conditions:
//   - errs.ErrInvalidCompressedData if input data is corrupted, truncated or
//     was compressed with an incompatible algorithm
//   - errs.ErrContainerTooLarge if the input declares a decoded size larger
//     than section.MaxContainerSize
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// checkContainerSize rejects sizes no container can reach.
func checkContainerSize(n uint64) error {
	if n > section.MaxContainerSize {
		return fmt.Errorf("%w: %d bytes, limit %d", errs.ErrContainerTooLarge, n, section.MaxContainerSize)
	}

	return nil
}

// decodedSize validates a decoded size read from compressed input and
// converts it to an allocation length.
func decodedSize(n uint64) (int, error) {
	if err := checkContainerSize(n); err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: %d bytes does not fit in memory", errs.ErrContainerTooLarge, n)
	}

	return int(n), nil
}

func corrupt(codec string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrInvalidCompressedData, codec, err)
}
