//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// gozstdLevel matches the ratio of the pure Go encoder's
// SpeedBetterCompression setting.
const gozstdLevel = 7

// Compress compresses a container into a single zstd frame using libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkContainerSize(uint64(len(data))); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress restores a container produced by Compress.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, corrupt("zstd", err)
	}
	if err := checkContainerSize(uint64(len(out))); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
