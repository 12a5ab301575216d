package container

import (
	"encoding/binary"
	"fmt"
	"sync"
	"testing"

	"github.com/arloliu/rodb/compress"
	"github.com/arloliu/rodb/encoding"
	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/format"
	"github.com/arloliu/rodb/section"
	"github.com/arloliu/rodb/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEncoder(t *testing.T, opts ...EncoderOption) *Encoder {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)

	return enc
}

func TestNewEncoder_Defaults(t *testing.T) {
	enc := newEncoder(t)

	require.Equal(t, format.CompressionNone, enc.Compression())
	require.Equal(t, encoding.DefaultMaxDepth, enc.MaxDepth())
}

func TestNewEncoder_Options(t *testing.T) {
	t.Run("Valid options", func(t *testing.T) {
		enc := newEncoder(t, WithCompression(format.CompressionS2), WithMaxDepth(8))

		require.Equal(t, format.CompressionS2, enc.Compression())
		require.Equal(t, 8, enc.MaxDepth())
	})

	t.Run("Invalid compression", func(t *testing.T) {
		_, err := NewEncoder(WithCompression(format.CompressionType(0x9)))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("Invalid max depth", func(t *testing.T) {
		_, err := NewEncoder(WithMaxDepth(0))
		require.ErrorIs(t, err, errs.ErrInvalidMaxDepth)
	})
}

func TestEncoder_Encode_Header(t *testing.T) {
	data, err := newEncoder(t).Encode(value.Array{})
	require.NoError(t, err)

	require.Equal(t, []byte("rodb"), data[0:4])
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, data[4:8])

	var h section.ContainerHeader
	require.NoError(t, h.Parse(data))

	chunk, err := section.ParseChunkHeader(data[section.RootChunkOffset:])
	require.NoError(t, err)
	require.Equal(t, format.TypeArray, chunk.Type)
	require.Equal(t, len(data), section.RootChunkOffset+chunk.Size(), "container holds exactly one chunk")
}

func TestEncoder_Encode_RootType(t *testing.T) {
	enc := newEncoder(t)

	rejected := []value.Value{
		value.Bool(true),
		value.Int(0),
		value.Float(0.0),
		value.Str("x"),
		nil,
	}
	for _, root := range rejected {
		t.Run(fmt.Sprintf("reject %s", value.KindOf(root)), func(t *testing.T) {
			data, err := enc.Encode(root)
			require.ErrorIs(t, err, errs.ErrInvalidRootType)
			require.Nil(t, data)
		})
	}

	accepted := []value.Value{value.Array{}, value.Map{}}
	for _, root := range accepted {
		t.Run(fmt.Sprintf("accept %s", root.Kind()), func(t *testing.T) {
			data, err := enc.Encode(root)
			require.NoError(t, err)
			require.NotEmpty(t, data)
		})
	}
}

func TestEncoder_Encode_SingleEntryMap(t *testing.T) {
	data, err := newEncoder(t).Encode(value.Map{{Key: value.Str("a"), Val: value.Int(0)}})
	require.NoError(t, err)

	root := data[section.RootChunkOffset:]
	h, err := section.ParseChunkHeader(root)
	require.NoError(t, err)
	require.Equal(t, format.TypeMap, h.Type)

	payload := root[section.ChunkHeaderSize:h.Size()]
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(payload[0:4]))

	keysLen := binary.LittleEndian.Uint32(payload[4:8])
	wantKeys, err := encoding.EncodeValue(value.Array{value.Str("a")})
	require.NoError(t, err)
	wantValues, err := encoding.EncodeValue(value.Array{value.Int(0)})
	require.NoError(t, err)

	require.Equal(t, uint32(len(wantKeys)), keysLen) //nolint: gosec
	require.Equal(t, wantKeys, payload[8:8+keysLen])
	require.Equal(t, wantValues, payload[8+keysLen:])
}

func TestEncoder_Encode_MatchesChunkEncoder(t *testing.T) {
	root := value.Array{value.Int(0), value.Int(1), value.Int(2)}

	data, err := newEncoder(t).Encode(root)
	require.NoError(t, err)

	chunk, err := encoding.EncodeValue(root)
	require.NoError(t, err)

	require.Equal(t, section.NewContainerHeader().Bytes(), data[:section.ContainerHeaderSize])
	require.Equal(t, chunk, data[section.ContainerHeaderSize:])
}

func TestEncoder_Encode_Errors(t *testing.T) {
	enc := newEncoder(t)

	t.Run("Non-string key nested in array", func(t *testing.T) {
		data, err := enc.Encode(value.Array{value.Map{{Key: value.Float(1), Val: value.Int(0)}}})
		require.ErrorIs(t, err, errs.ErrNonStringMapKey)
		require.Nil(t, data)
	})

	t.Run("Unsupported element", func(t *testing.T) {
		data, err := enc.Encode(value.Array{nil})
		require.ErrorIs(t, err, errs.ErrUnsupportedType)
		require.Nil(t, data)
	})

	t.Run("Depth limit", func(t *testing.T) {
		shallow := newEncoder(t, WithMaxDepth(1))
		_, err := shallow.Encode(value.Array{value.Array{}})
		require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
	})
}

func TestEncoder_Encode_Idempotent(t *testing.T) {
	src := map[string]value.Value{}
	for i := range 32 {
		src[fmt.Sprintf("k%d", i)] = value.Map{
			{Key: value.Str("n"), Val: value.Int(int32(i))}, //nolint: gosec
			{Key: value.Str("f"), Val: value.Float(float32(i) / 2)},
		}
	}
	enc := newEncoder(t)

	first, err := enc.Encode(value.StrMap(src))
	require.NoError(t, err)

	for range 5 {
		again, err := enc.Encode(value.StrMap(src))
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEncoder_Encode_Compression(t *testing.T) {
	root := value.Array{}
	for i := range 200 {
		root = append(root, value.Str(fmt.Sprintf("repeated-string-%d", i%10)))
	}

	plain, err := newEncoder(t).Encode(root)
	require.NoError(t, err)

	for _, typ := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			data, err := newEncoder(t, WithCompression(typ)).Encode(root)
			require.NoError(t, err)
			require.Less(t, len(data), len(plain))

			codec, err := compress.GetCodec(typ)
			require.NoError(t, err)
			restored, err := codec.Decompress(data)
			require.NoError(t, err)
			require.Equal(t, plain, restored)
		})
	}
}

func TestEncoder_Encode_Concurrent(t *testing.T) {
	enc := newEncoder(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			root := value.Array{value.Int(int32(id)), value.Str(fmt.Sprint(id))} //nolint: gosec
			want, err := encoding.EncodeValue(root)
			assert.NoError(t, err)

			for range 50 {
				data, err := enc.Encode(root)
				assert.NoError(t, err)
				assert.Equal(t, want, data[section.ContainerHeaderSize:])
			}
		}(i)
	}
	wg.Wait()
}

func TestValidateRoot(t *testing.T) {
	require.NoError(t, ValidateRoot(value.Array(nil)))
	require.NoError(t, ValidateRoot(value.Map(nil)))

	err := ValidateRoot(value.Str("x"))
	require.ErrorIs(t, err, errs.ErrInvalidRootType)
	require.Contains(t, err.Error(), "got Str")

	err = ValidateRoot(nil)
	require.ErrorIs(t, err, errs.ErrInvalidRootType)
	require.Contains(t, err.Error(), "got nil")
}
