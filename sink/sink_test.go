package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rodb/errs"
)

func TestFile_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.rodb")
	f := NewFile(path)
	require.Equal(t, path, f.Path())

	require.NoError(t, f.Write([]byte("first")))
	require.NoError(t, f.Write([]byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFileMode, info.Mode().Perm())
}

func TestFile_WithMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.rodb")
	require.NoError(t, NewFile(path).WithMode(0o600).Write([]byte("x")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFile_WriteMissingDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out.rodb")

	require.Error(t, NewFile(path).Write([]byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Write([]byte("rodb")))
	require.Equal(t, "rodb", buf.String())
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

type failWriter struct{}

var errBroken = errors.New("broken pipe")

func (failWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriter_Errors(t *testing.T) {
	err := NewWriter(shortWriter{}).Write([]byte("abcd"))
	require.Error(t, err)

	err = NewWriter(failWriter{}).Write([]byte("abcd"))
	require.ErrorIs(t, err, errBroken)
}

func TestBolt_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	b, err := OpenBolt(path, "containers", "config")
	require.NoError(t, err)

	got, err := b.Read()
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, b.Write([]byte("v1")))
	require.NoError(t, b.Write([]byte("v2")))
	require.NoError(t, b.Close())

	b, err = OpenBolt(path, "containers", "config")
	require.NoError(t, err)
	defer b.Close()

	got, err = b.Read()
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)
}

func TestOpenBolt_InvalidTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	_, err := OpenBolt(path, "", "k")
	require.ErrorIs(t, err, errs.ErrInvalidSinkTarget)

	_, err = OpenBolt(path, "b", "")
	require.ErrorIs(t, err, errs.ErrInvalidSinkTarget)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}
