//go:build !(cgo && gozstd)

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/section"
)

// zstdDecoderPool pools decoders limited to the largest container, so a frame
// declaring a bigger content size fails before its output is allocated.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(section.MaxContainerSize),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd decoder initialization failed: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPool pools encoders. Containers are compiled once and shipped,
// so the encoder trades speed for ratio.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: zstd encoder initialization failed: %v", err))
		}

		return encoder
	},
}

// Compress compresses a container into a single zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if err := checkContainerSize(uint64(len(data))); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress restores a container produced by Compress.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, fmt.Errorf("zstd: %w: %w", errs.ErrContainerTooLarge, err)
	}
	if err != nil {
		return nil, corrupt("zstd", err)
	}

	return out, nil
}
