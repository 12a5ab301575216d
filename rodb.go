// Package rodb compiles structured documents into RODB, a compact read-only
// binary container meant to be memory-mapped and queried in place.
//
// A container starts with the magic "rodb" and a little-endian format version,
// followed by a single root chunk that must be an array or a map. Every chunk
// is a 4-byte type tag, a little-endian uint32 payload length and the payload.
// Arrays carry an offset table so any element can be reached without decoding
// its siblings; maps store their keys sorted so lookups can binary search.
//
// # Core Features
//
//   - Bit-exact, deterministic output for a given document tree
//   - Single-pass encoding with back-patched lengths and offsets
//   - Source loaders for YAML, JSON (with comments), MessagePack and CBOR
//   - Optional whole-container compression (None, Zstd, S2, LZ4)
//   - Atomic file output and bbolt database output
//
// # Basic Usage
//
// Encoding a document tree built in code:
//
//	import (
//	    "github.com/arloliu/rodb"
//	    "github.com/arloliu/rodb/value"
//	)
//
//	root := value.Map{
//	    {Key: value.Str("name"), Val: value.Str("svc")},
//	    {Key: value.Str("ports"), Val: value.Array{value.Int(80), value.Int(443)}},
//	}
//	data, err := rodb.Encode(root)
//
// Compiling a YAML file:
//
//	err := rodb.CompileFile("config.yaml", "config.rodb")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container,
// loader and sink packages. For fine-grained control use those directly.
package rodb

import (
	"fmt"
	"os"

	"github.com/arloliu/rodb/container"
	"github.com/arloliu/rodb/format"
	"github.com/arloliu/rodb/internal/hash"
	"github.com/arloliu/rodb/loader"
	"github.com/arloliu/rodb/sink"
	"github.com/arloliu/rodb/value"
)

// NewEncoder creates a container encoder.
//
// Parameters:
//   - opts: Optional configuration, see container.WithCompression and container.WithMaxDepth
//
// Returns:
//   - *container.Encoder: Encoder ready for use, safe for concurrent use
//   - error: Configuration error if an option is invalid
func NewEncoder(opts ...container.EncoderOption) (*container.Encoder, error) {
	return container.NewEncoder(opts...)
}

// Encode encodes root into an uncompressed container using default options.
//
// Example:
//
//	data, err := rodb.Encode(value.Array{value.Bool(true)})
//	// data = "rodb" 01 00 00 00 | 'a' 00 00 00 | ...
func Encode(root value.Value) ([]byte, error) {
	enc, err := container.NewEncoder()
	if err != nil {
		return nil, err
	}

	return enc.Encode(root)
}

// Compile loads a source document in the given format and encodes it.
// The loader enforces the same nesting limit as the encoder.
//
// Parameters:
//   - data: Source document bytes
//   - f: Source format
//   - opts: Encoder options
//
// Returns:
//   - []byte: Container bytes
//   - error: Configuration, loader or encoder error
func Compile(data []byte, f loader.Format, opts ...container.EncoderOption) ([]byte, error) {
	enc, err := container.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	root, err := loader.Load(f, data, loader.WithMaxDepth(enc.MaxDepth()))
	if err != nil {
		return nil, err
	}

	return enc.Encode(root)
}

// CompileFile compiles the document at input and atomically writes the
// container to output. The source format is taken from the input extension.
// On error output is left untouched.
func CompileFile(input, output string, opts ...container.EncoderOption) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	out, err := Compile(data, loader.FormatFromPath(input), opts...)
	if err != nil {
		return fmt.Errorf("compile %s: %w", input, err)
	}

	return sink.NewFile(output).Write(out)
}

// Digest returns the hex xxHash64 digest of a container, used to identify
// container contents in logs.
func Digest(data []byte) string {
	return hash.Digest(data)
}

// ParseCompression converts a compression name ("none", "zstd", "s2", "lz4")
// into an encoder option.
func ParseCompression(name string) (container.EncoderOption, error) {
	comp, err := format.ParseCompressionType(name)
	if err != nil {
		return nil, err
	}

	return container.WithCompression(comp), nil
}
