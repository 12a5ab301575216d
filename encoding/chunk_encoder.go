package encoding

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/rodb/endian"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/format"
	"github.com/arloliu/rodb/internal/pool"
	"github.com/arloliu/rodb/section"
	"github.com/arloliu/rodb/value"
)

// DefaultMaxDepth is the default limit on nested arrays and maps.
const DefaultMaxDepth = 1024

// ChunkEncoder encodes values into RODB chunks.
//
// Each call to Encode appends exactly one chunk to the encoder's buffer. On
// error the buffer is rolled back to its length before the call, so a failed
// value never leaves partial bytes behind.
type ChunkEncoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	maxDepth int
}

// NewChunkEncoder creates a ChunkEncoder backed by a pooled buffer.
//
// Parameters:
//   - maxDepth: Maximum number of nested arrays and maps; values <= 0 select DefaultMaxDepth
//
// Returns:
//   - *ChunkEncoder: Encoder ready for use; call Release when done
func NewChunkEncoder(maxDepth int) *ChunkEncoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &ChunkEncoder{
		buf:      pool.GetChunkBuffer(),
		engine:   endian.GetLittleEndianEngine(),
		maxDepth: maxDepth,
	}
}

// EncodeValue encodes v into a single, freshly allocated chunk.
func EncodeValue(v value.Value) ([]byte, error) {
	e := NewChunkEncoder(DefaultMaxDepth)
	defer e.Release()

	if err := e.Encode(v); err != nil {
		return nil, err
	}

	return slices.Clone(e.Bytes()), nil
}

// Encode appends the chunk of v to the buffer.
//
// Returns:
//   - error: ErrUnsupportedType, ErrNonStringMapKey, ErrDuplicateMapKey, ErrEmbeddedNUL,
//     ErrPayloadTooLarge or ErrMaxDepthExceeded, wrapped with context
func (e *ChunkEncoder) Encode(v value.Value) error {
	start := e.buf.Len()
	if err := e.encode(v, 0); err != nil {
		e.buf.Truncate(start)
		return err
	}

	return nil
}

// Bytes returns the encoded chunks. The slice aliases the pooled buffer and is
// only valid until the next Encode, Reset or Release call.
func (e *ChunkEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded bytes.
func (e *ChunkEncoder) Len() int {
	return e.buf.Len()
}

// Reset discards the encoded bytes and keeps the buffer for reuse.
func (e *ChunkEncoder) Reset() {
	e.buf.Reset()
}

// Release returns the buffer to the pool. The encoder must not be used afterwards.
func (e *ChunkEncoder) Release() {
	pool.PutChunkBuffer(e.buf)
	e.buf = nil
}

func (e *ChunkEncoder) encode(v value.Value, depth int) error {
	switch v := v.(type) {
	case value.Bool:
		var b uint32
		if v {
			b = 1
		}

		return e.encodeScalar(format.TypeBool, b)
	case value.Int:
		return e.encodeScalar(format.TypeInt, uint32(v)) //nolint: gosec
	case value.Float:
		return e.encodeScalar(format.TypeFloat, math.Float32bits(float32(v)))
	case value.Str:
		return e.encodeStr(v)
	case value.Array:
		if depth >= e.maxDepth {
			return fmt.Errorf("%w: limit %d", errs.ErrMaxDepthExceeded, e.maxDepth)
		}

		return e.encodeSequence(len(v), func(i int) error {
			return e.encode(v[i], depth+1)
		})
	case value.Map:
		if depth >= e.maxDepth {
			return fmt.Errorf("%w: limit %d", errs.ErrMaxDepthExceeded, e.maxDepth)
		}

		return e.encodeMap(v, depth)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v)
	}
}

// beginChunk reserves a chunk header and returns its offset.
func (e *ChunkEncoder) beginChunk() int {
	return e.buf.Reserve(section.ChunkHeaderSize)
}

// endChunk back-patches the header reserved at start with the payload length.
func (e *ChunkEncoder) endChunk(typ format.ChunkType, start int) error {
	n := e.buf.Len() - start - section.ChunkHeaderSize
	if uint64(n) > section.MaxPayloadSize {
		return fmt.Errorf("%w: %s payload is %d bytes", errs.ErrPayloadTooLarge, typ, n)
	}

	section.ChunkHeader{Type: typ, Length: uint32(n)}.Put(e.buf.B[start:])

	return nil
}

func (e *ChunkEncoder) writeUint32(v uint32) {
	e.buf.B = e.engine.AppendUint32(e.buf.B, v)
}

func (e *ChunkEncoder) encodeScalar(typ format.ChunkType, payload uint32) error {
	start := e.beginChunk()
	e.writeUint32(payload)

	return e.endChunk(typ, start)
}

func (e *ChunkEncoder) encodeStr(s value.Str) error {
	if err := value.CheckStr(string(s)); err != nil {
		return err
	}

	start := e.beginChunk()
	_, _ = e.buf.WriteString(string(s))
	_ = e.buf.WriteByte(0)

	return e.endChunk(format.TypeStr, start)
}

// encodeSequence writes an array chunk of n items; item(i) must append exactly
// one chunk for element i.
func (e *ChunkEncoder) encodeSequence(n int, item func(i int) error) error {
	if uint64(n) > section.MaxPayloadSize {
		return fmt.Errorf("%w: %d elements", errs.ErrPayloadTooLarge, n)
	}

	start := e.beginChunk()
	e.writeUint32(uint32(n))

	table := e.buf.Reserve(n * section.OffsetEntrySize)
	blob := e.buf.Len()

	for i := range n {
		offset := e.buf.Len() - blob
		if uint64(offset) > section.MaxPayloadSize {
			return fmt.Errorf("%w: offset of element %d is %d", errs.ErrPayloadTooLarge, i, offset)
		}
		e.engine.PutUint32(e.buf.B[table+i*section.OffsetEntrySize:], uint32(offset))

		if err := item(i); err != nil {
			return err
		}
	}

	return e.endChunk(format.TypeArray, start)
}

func (e *ChunkEncoder) encodeMap(m value.Map, depth int) error {
	// Validate every key before writing any byte of this map.
	for i, entry := range m {
		key, ok := entry.Key.(value.Str)
		if !ok {
			return fmt.Errorf("%w: entry %d has %s key", errs.ErrNonStringMapKey, i, value.KindOf(entry.Key))
		}

		if err := value.CheckStr(string(key)); err != nil {
			return fmt.Errorf("map key %q: %w", string(key), err)
		}
	}

	perm, cleanup := pool.GetIntSlice(len(m))
	defer cleanup()

	for i := range perm {
		perm[i] = i
	}

	keyAt := func(i int) string {
		return string(m[perm[i]].Key.(value.Str)) //nolint: forcetypeassert
	}

	slices.SortStableFunc(perm, func(a, b int) int {
		return strings.Compare(string(m[a].Key.(value.Str)), string(m[b].Key.(value.Str))) //nolint: forcetypeassert
	})

	for i := 1; i < len(perm); i++ {
		if keyAt(i) == keyAt(i-1) {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateMapKey, keyAt(i))
		}
	}

	if uint64(len(m)) > section.MaxPayloadSize {
		return fmt.Errorf("%w: %d entries", errs.ErrPayloadTooLarge, len(m))
	}

	start := e.beginChunk()
	e.writeUint32(uint32(len(m)))

	keysLenAt := e.buf.Reserve(section.KeysLengthSize)
	keysStart := e.buf.Len()

	if err := e.encodeSequence(len(perm), func(i int) error {
		return e.encodeStr(value.Str(keyAt(i)))
	}); err != nil {
		return err
	}

	keysLen := e.buf.Len() - keysStart
	if uint64(keysLen) > section.MaxPayloadSize {
		return fmt.Errorf("%w: keys chunk is %d bytes", errs.ErrPayloadTooLarge, keysLen)
	}
	e.engine.PutUint32(e.buf.B[keysLenAt:], uint32(keysLen))

	if err := e.encodeSequence(len(perm), func(i int) error {
		return e.encode(m[perm[i]].Val, depth+1)
	}); err != nil {
		return err
	}

	return e.endChunk(format.TypeMap, start)
}
