package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// Compressed LZ4 container layout:
//
//	uvarint  decoded size
//	byte     mode, lz4ModeBlock or lz4ModeRaw
//	[]byte   LZ4 block, or the container itself when LZ4 could not shrink it
const (
	lz4ModeRaw   byte = 0
	lz4ModeBlock byte = 1

	// lz4MaxRatio bounds the decoded size an LZ4 block of a given length can
	// produce; a literal run or match extension byte adds at most 255 bytes.
	lz4MaxRatio = 256
)

var (
	errLZ4Header    = errors.New("truncated size header")
	errLZ4Mode      = errors.New("unknown block mode")
	errLZ4Ratio     = errors.New("declared size exceeds maximum block expansion")
	errLZ4SizeMatch = errors.New("decoded size does not match header")
)

// lz4CompressorPool keeps lz4.Compressor hash tables across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses containers with the LZ4 block format.
//
// A raw LZ4 block does not record its decoded size, so the compressed form is
// prefixed with it. Decompress allocates the container exactly once and
// rejects sizes above section.MaxContainerSize before allocating.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses a container using a pooled lz4.Compressor.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: errs.ErrContainerTooLarge for input larger than any container
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkContainerSize(uint64(len(data))); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	dst := make([]byte, binary.MaxVarintLen64+1+lz4.CompressBlockBound(len(data)))
	h := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[h+1:])
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	// n is 0 when the block would not be smaller than its input.
	if n == 0 || n >= len(data) {
		dst[h] = lz4ModeRaw
		return append(dst[:h+1], data...), nil
	}

	dst[h] = lz4ModeBlock

	return dst[:h+1+n], nil
}

// Decompress restores a container produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, h := binary.Uvarint(data)
	if h <= 0 || len(data) <= h {
		return nil, corrupt("lz4", errLZ4Header)
	}

	n, err := decodedSize(size)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	mode, body := data[h], data[h+1:]
	switch mode {
	case lz4ModeRaw:
		if len(body) != n {
			return nil, corrupt("lz4", errLZ4SizeMatch)
		}

		return append([]byte(nil), body...), nil
	case lz4ModeBlock:
		if n > len(body)*lz4MaxRatio {
			return nil, corrupt("lz4", errLZ4Ratio)
		}

		out := make([]byte, n)
		m, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, corrupt("lz4", err)
		}
		if m != n {
			return nil, corrupt("lz4", errLZ4SizeMatch)
		}

		return out, nil
	default:
		return nil, corrupt("lz4", fmt.Errorf("%w 0x%02x", errLZ4Mode, mode))
	}
}
