package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/rodb/errs"
)

type (
	ChunkType       uint8
	CompressionType uint8
)

// Chunk types are the ASCII letters written as the first byte of a chunk tag.
const (
	TypeBool  ChunkType = 'b' // TypeBool represents a boolean chunk.
	TypeInt   ChunkType = 'i' // TypeInt represents a 32-bit signed integer chunk.
	TypeFloat ChunkType = 'f' // TypeFloat represents a binary32 float chunk.
	TypeStr   ChunkType = 's' // TypeStr represents a NUL-terminated string chunk.
	TypeArray ChunkType = 'a' // TypeArray represents an array chunk with offset table.
	TypeMap   ChunkType = 'm' // TypeMap represents a map chunk with sorted keys.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Tag returns the 4-byte chunk tag: the type letter padded with NUL bytes.
func (t ChunkType) Tag() [4]byte {
	return [4]byte{byte(t), 0, 0, 0}
}

// IsValid reports whether t is one of the six defined chunk types.
func (t ChunkType) IsValid() bool {
	switch t {
	case TypeBool, TypeInt, TypeFloat, TypeStr, TypeArray, TypeMap:
		return true
	default:
		return false
	}
}

// IsContainer reports whether t may appear as the root chunk.
func (t ChunkType) IsContainer() bool {
	return t == TypeArray || t == TypeMap
}

func (t ChunkType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeStr:
		return "Str"
	case TypeArray:
		return "Array"
	case TypeMap:
		return "Map"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType converts a case-insensitive name such as "zstd" into a CompressionType.
// The empty string maps to CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
