package loader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rodb/errs"
	"github.com/arloliu/rodb/value"
)

func TestFromNative_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"bool", true, value.Bool(true)},
		{"int", 12, value.Int(12)},
		{"int8", int8(-8), value.Int(-8)},
		{"int64 min", int64(math.MinInt32), value.Int(math.MinInt32)},
		{"uint8", uint8(255), value.Int(255)},
		{"uint32", uint32(math.MaxInt32), value.Int(math.MaxInt32)},
		{"float32", float32(0.25), value.Float(0.25)},
		{"float64 narrowed", 0.1, value.Float(float32(0.1))},
		{"string", "hi", value.Str("hi")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFromNative_Containers(t *testing.T) {
	got, err := FromNative([]any{1, []any{"a"}, map[string]any{"k": false}})
	require.NoError(t, err)

	want := value.Array{
		value.Int(1),
		value.Array{value.Str("a")},
		value.Map{{Key: value.Str("k"), Val: value.Bool(false)}},
	}
	require.Equal(t, want, got)

	got, err = FromNative(map[any]any{uint64(3): "three"})
	require.NoError(t, err)
	require.Equal(t, value.Map{{Key: value.Int(3), Val: value.Str("three")}}, got)
}

func TestFromNative_Errors(t *testing.T) {
	type custom struct{}

	tests := []struct {
		name string
		in   any
		want error
	}{
		{"nil", nil, errs.ErrUnsupportedType},
		{"struct", custom{}, errs.ErrUnsupportedType},
		{"bytes", []byte("x"), errs.ErrUnsupportedType},
		{"int64 high", int64(math.MaxInt32) + 1, errs.ErrIntOutOfRange},
		{"int64 low", int64(math.MinInt32) - 1, errs.ErrIntOutOfRange},
		{"uint64", uint64(math.MaxUint64), errs.ErrIntOutOfRange},
		{"nul string", "a\x00b", errs.ErrEmbeddedNUL},
		{"nul key", map[string]any{"\x00": 1}, errs.ErrEmbeddedNUL},
		{"nested nil", map[string]any{"a": []any{nil}}, errs.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromNative(tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromNative_MaxDepth(t *testing.T) {
	var v any = []any{}
	for range DefaultMaxDepth {
		v = []any{v}
	}

	_, err := FromNative(v)
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}

func TestFromNative_WithMaxDepth(t *testing.T) {
	v := []any{[]any{[]any{}}}

	_, err := FromNative(v, WithMaxDepth(3))
	require.NoError(t, err)

	_, err = FromNative(v, WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}
