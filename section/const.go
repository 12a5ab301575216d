package section

import "math"

// Container identification.
const (
	Magic         = "rodb" // Magic is the 4-byte ASCII signature at offset 0 of every container.
	FormatVersion = 1      // FormatVersion is the only container version this package writes.
)

// offset and section sizes in the container
const (
	ContainerHeaderSize = 8 // magic (4) + version (4)
	ChunkHeaderSize     = 8 // type tag (4) + payload length (4)
	TagSize             = 4 // ASCII type tag, NUL padded
	CountSize           = 4 // element count prefix of array and map payloads
	OffsetEntrySize     = 4 // one entry of an array offset table
	KeysLengthSize      = 4 // keys chunk length field of a map payload
	ScalarPayloadSize   = 4 // payload size of bool, int and float chunks

	// RootChunkOffset is the byte offset where the root chunk starts.
	RootChunkOffset = ContainerHeaderSize
	// MaxPayloadSize is the largest payload length, count or offset value.
	MaxPayloadSize = math.MaxUint32
)

// MaxContainerSize is the size of the largest container the format can
// describe: both headers plus a root payload of MaxPayloadSize bytes.
const MaxContainerSize uint64 = ContainerHeaderSize + ChunkHeaderSize + MaxPayloadSize
