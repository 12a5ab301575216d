// Package errs defines the sentinel errors returned by rodb packages.
//
// Call sites wrap these with context using fmt.Errorf and %w, so callers
// should match them with errors.Is.
package errs

import "errors"

// Encoding errors.
var (
	// ErrInvalidRootType is returned when the root value is not an Array or a Map.
	ErrInvalidRootType = errors.New("root value must be an array or a map")
	// ErrNonStringMapKey is returned when a map contains a key that is not a Str.
	ErrNonStringMapKey = errors.New("map keys must be strings")
	// ErrUnsupportedType is returned for values outside the closed variant set.
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrDuplicateMapKey is returned when a map holds the same key twice.
	ErrDuplicateMapKey = errors.New("duplicate map key")
	// ErrEmbeddedNUL is returned when a string contains a NUL byte.
	ErrEmbeddedNUL = errors.New("string contains an embedded NUL byte")
	// ErrPayloadTooLarge is returned when a length, count or offset does not fit in uint32.
	ErrPayloadTooLarge = errors.New("payload exceeds uint32 range")
	// ErrMaxDepthExceeded is returned when nesting goes beyond the configured limit.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")
	// ErrInvalidMaxDepth is returned for a non-positive depth limit.
	ErrInvalidMaxDepth = errors.New("max depth must be positive")
	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrContainerTooLarge is returned when a buffer is larger than any container can be.
	ErrContainerTooLarge = errors.New("container exceeds maximum size")
	// ErrInvalidCompressedData is returned when a compressed container cannot be decoded.
	ErrInvalidCompressedData = errors.New("invalid compressed data")
)

// Header errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrInvalidChunkType   = errors.New("invalid chunk type tag")
)

// Loader errors.
var (
	// ErrEmptyDocument is returned when the source contains no document.
	ErrEmptyDocument = errors.New("empty document")
	// ErrIntOutOfRange is returned for integers that do not fit in int32.
	ErrIntOutOfRange = errors.New("integer out of int32 range")
	// ErrAliasCycle is returned when a YAML alias refers to one of its ancestors.
	ErrAliasCycle = errors.New("recursive alias")
	// ErrAliasExpansion is returned when YAML aliases expand to far more nodes
	// than the document itself holds.
	ErrAliasExpansion = errors.New("excessive alias expansion")
	// ErrTrailingData is returned when input continues after the document.
	ErrTrailingData = errors.New("trailing data after document")
	// ErrUnknownFormat is returned for an unrecognized source format name.
	ErrUnknownFormat = errors.New("unknown source format")
)

// Sink errors.
var (
	// ErrInvalidSinkTarget is returned when a sink is opened without a destination name.
	ErrInvalidSinkTarget = errors.New("invalid sink target")
)
