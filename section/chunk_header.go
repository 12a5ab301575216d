package section

import (
	"fmt"

	"github.com/arloliu/rodb/endian"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/format"
)

// ChunkHeader is the 8-byte prefix of every chunk.
//
// Layout:
//   - Tag:    4 bytes, type letter followed by three NUL bytes, offset 0-3
//   - Length: 4 bytes, little-endian uint32 payload length, offset 4-7
type ChunkHeader struct {
	Type   format.ChunkType
	Length uint32
}

// ParseChunkHeader parses the chunk header at the start of data.
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	var h ChunkHeader
	if err := h.Parse(data); err != nil {
		return ChunkHeader{}, err
	}

	return h, nil
}

// Parse parses the header from the first ChunkHeaderSize bytes of data.
// The tag must be a known type letter padded with NUL bytes.
func (h *ChunkHeader) Parse(data []byte) error {
	if len(data) < ChunkHeaderSize {
		return fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), ChunkHeaderSize)
	}

	typ := format.ChunkType(data[0])
	if !typ.IsValid() || data[1] != 0 || data[2] != 0 || data[3] != 0 {
		return fmt.Errorf("%w: %q", errs.ErrInvalidChunkType, data[0:TagSize])
	}

	h.Type = typ
	h.Length = endian.GetLittleEndianEngine().Uint32(data[4:8])

	return nil
}

// Size returns the total chunk size: header plus payload.
func (h ChunkHeader) Size() int {
	return ChunkHeaderSize + int(h.Length)
}

// Put writes the header into the first ChunkHeaderSize bytes of dst.
// It panics if dst is shorter than ChunkHeaderSize.
func (h ChunkHeader) Put(dst []byte) {
	_ = dst[ChunkHeaderSize-1]
	tag := h.Type.Tag()
	copy(dst[0:TagSize], tag[:])
	endian.GetLittleEndianEngine().PutUint32(dst[4:8], h.Length)
}

// Bytes serializes the header into a new byte slice.
func (h ChunkHeader) Bytes() []byte {
	b := make([]byte, ChunkHeaderSize)
	h.Put(b)

	return b
}
