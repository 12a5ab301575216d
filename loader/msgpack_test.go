package loader

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

func TestLoadMsgPack_OrderAndKeys(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	require.NoError(t, enc.EncodeMapLen(3))
	require.NoError(t, enc.EncodeString("z"))
	require.NoError(t, enc.EncodeInt(-5))
	require.NoError(t, enc.EncodeString("a"))
	require.NoError(t, enc.EncodeArrayLen(2))
	require.NoError(t, enc.EncodeBool(true))
	require.NoError(t, enc.EncodeFloat64(1.5))
	require.NoError(t, enc.EncodeInt(7))
	require.NoError(t, enc.EncodeString("int key"))

	v, err := LoadMsgPack(buf.Bytes())
	require.NoError(t, err)

	want := value.Map{
		{Key: value.Str("z"), Val: value.Int(-5)},
		{Key: value.Str("a"), Val: value.Array{value.Bool(true), value.Float(1.5)}},
		{Key: value.Int(7), Val: value.Str("int key")},
	}
	require.Equal(t, want, v)
}

func TestLoadMsgPack_Marshaled(t *testing.T) {
	data, err := msgpack.Marshal([]any{"x", uint16(300), []any{}, map[string]any{}})
	require.NoError(t, err)

	v, err := LoadMsgPack(data)
	require.NoError(t, err)
	require.Equal(t, value.Array{value.Str("x"), value.Int(300), value.Array{}, value.Map{}}, v)
}

func TestLoadMsgPack_Errors(t *testing.T) {
	marshal := func(v any) []byte {
		data, err := msgpack.Marshal(v)
		require.NoError(t, err)

		return data
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, errs.ErrEmptyDocument},
		{"nil", marshal(nil), errs.ErrUnsupportedType},
		{"binary", marshal([]byte{1, 2}), errs.ErrUnsupportedType},
		{"uint overflow", marshal(uint64(1 << 40)), errs.ErrIntOutOfRange},
		{"nested nil", marshal([]any{1, nil}), errs.ErrUnsupportedType},
		{"trailing", append(marshal(1), marshal(2)...), errs.ErrTrailingData},
		{"nul string", marshal("a\x00"), errs.ErrEmbeddedNUL},
		{"bin8", []byte{0xc4, 0x01, 'a'}, errs.ErrUnsupportedType},
		{"bin16", []byte{0xc5, 0x00, 0x01, 'a'}, errs.ErrUnsupportedType},
		{"bin32", []byte{0xc6, 0x00, 0x00, 0x00, 0x01, 'a'}, errs.ErrUnsupportedType},
		{"fixext1", []byte{0xd4, 0x01, 0x00}, errs.ErrUnsupportedType},
		{"ext8", []byte{0xc7, 0x02, 0x05, 0x00, 0x00}, errs.ErrUnsupportedType},
		{"timestamp ext", marshal(time.Unix(1700000000, 0)), errs.ErrUnsupportedType},
		{"binary map value", append([]byte{0x81, 0xa1, 'k'}, marshal([]byte("v"))...), errs.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMsgPack(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMsgPack_Truncated(t *testing.T) {
	// array16 declaring 1000 items with only one present
	_, err := LoadMsgPack([]byte{0xdc, 0x03, 0xe8, 0x01})
	require.Error(t, err)
}
