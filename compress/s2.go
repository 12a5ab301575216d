package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/rodb/errs"
)

// S2Compressor compresses containers with the S2 block format.
//
// A container is written once and read many times, so Compress uses the
// slower "better" encoder. S2 blocks record their decoded size, and the block
// limit lies below section.MaxContainerSize, so Decompress allocates once.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses a container as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkContainerSize(uint64(len(data))); err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}

	// S2 blocks hold at most 4GiB-1, slightly less than the largest container.
	if s2.MaxEncodedLen(len(data)) < 0 {
		return nil, fmt.Errorf("s2: %w: %d bytes exceeds block limit", errs.ErrContainerTooLarge, len(data))
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress restores a container produced by Compress.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, corrupt("s2", err)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, corrupt("s2", err)
	}

	return out, nil
}
