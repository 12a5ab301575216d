package loader

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

func TestLoadCBOR_Map(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{
		"name":  "svc",
		"ports": []any{80, 443},
		"ok":    true,
	})
	require.NoError(t, err)

	v, err := LoadCBOR(data)
	require.NoError(t, err)

	m, ok := v.(value.Map)
	require.True(t, ok)
	require.ElementsMatch(t, value.Map{
		{Key: value.Str("name"), Val: value.Str("svc")},
		{Key: value.Str("ports"), Val: value.Array{value.Int(80), value.Int(443)}},
		{Key: value.Str("ok"), Val: value.Bool(true)},
	}, m)
}

func TestLoadCBOR_Scalars(t *testing.T) {
	data, err := cbor.Marshal([]any{-3, 2.5, "é"})
	require.NoError(t, err)

	v, err := LoadCBOR(data)
	require.NoError(t, err)
	require.Equal(t, value.Array{value.Int(-3), value.Float(2.5), value.Str("é")}, v)
}

func TestLoadCBOR_IntKeys(t *testing.T) {
	data, err := cbor.Marshal(map[int]string{1: "one"})
	require.NoError(t, err)

	v, err := LoadCBOR(data)
	require.NoError(t, err)
	require.Equal(t, value.Map{{Key: value.Int(1), Val: value.Str("one")}}, v)
}

func TestLoadCBOR_DuplicateKeys(t *testing.T) {
	// map(2) {"a": 1, "a": 2}
	_, err := LoadCBOR([]byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02})
	require.Error(t, err)

	var dupErr *cbor.DupMapKeyError
	require.True(t, errors.As(err, &dupErr))
}

func TestLoadCBOR_Errors(t *testing.T) {
	marshal := func(v any) []byte {
		data, err := cbor.Marshal(v)
		require.NoError(t, err)

		return data
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, errs.ErrEmptyDocument},
		{"null", marshal(nil), errs.ErrUnsupportedType},
		{"byte string", marshal([]byte{1}), errs.ErrUnsupportedType},
		{"int overflow", marshal(int64(-1) << 40), errs.ErrIntOutOfRange},
		{"trailing", append(marshal(1), marshal(2)...), errs.ErrTrailingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCBOR(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
