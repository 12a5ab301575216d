package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testSettings struct {
	Depth    int
	Codec    string
	Strict   bool
	LastCall string
}

func (s *testSettings) SetDepth(d int) error {
	if d <= 0 {
		return errors.New("depth must be positive")
	}
	s.Depth = d
	s.LastCall = "SetDepth"

	return nil
}

func (s *testSettings) SetCodec(name string) {
	s.Codec = name
	s.LastCall = "SetCodec"
}

func withDepth(d int) Option[*testSettings] {
	return New(func(s *testSettings) error { return s.SetDepth(d) })
}

func withCodec(name string) Option[*testSettings] {
	return NoError(func(s *testSettings) { s.SetCodec(name) })
}

func TestNew(t *testing.T) {
	t.Run("applies value", func(t *testing.T) {
		s := &testSettings{}
		require.NoError(t, withDepth(8).apply(s))
		require.Equal(t, 8, s.Depth)
	})

	t.Run("propagates error", func(t *testing.T) {
		s := &testSettings{}
		err := withDepth(0).apply(s)
		require.EqualError(t, err, "depth must be positive")
		require.Equal(t, 0, s.Depth)
	})
}

func TestNoError(t *testing.T) {
	s := &testSettings{}
	require.NoError(t, withCodec("zstd").apply(s))
	require.Equal(t, "zstd", s.Codec)
	require.Equal(t, "SetCodec", s.LastCall)
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		s := &testSettings{}
		err := Apply(s, withCodec("s2"), withDepth(4), withCodec("lz4"))

		require.NoError(t, err)
		require.Equal(t, 4, s.Depth)
		require.Equal(t, "lz4", s.Codec)
		require.Equal(t, "SetCodec", s.LastCall)
	})

	t.Run("stops at first error", func(t *testing.T) {
		s := &testSettings{}
		err := Apply(s, withDepth(2), withDepth(-1), withCodec("never"))

		require.Error(t, err)
		require.Equal(t, 2, s.Depth)
		require.Empty(t, s.Codec)
	})

	t.Run("skips nil options", func(t *testing.T) {
		s := &testSettings{}
		err := Apply(s, nil, withCodec("none"))

		require.NoError(t, err)
		require.Equal(t, "none", s.Codec)
	})

	t.Run("no options", func(t *testing.T) {
		s := &testSettings{}
		require.NoError(t, Apply(s))
		require.Equal(t, testSettings{}, *s)
	})
}
