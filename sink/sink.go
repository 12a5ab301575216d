// Package sink writes finished containers to their destination.
//
// A sink receives the complete container in a single Write call. Sinks never
// expose a partially written container: File replaces the target atomically
// and Bolt stores the value inside one transaction.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// Sink is the destination of an encoded container.
type Sink interface {
	Write(data []byte) error
}

// DefaultFileMode is the permission used for files created by File.
const DefaultFileMode os.FileMode = 0o644

// File writes the container to a path, replacing any existing file atomically.
type File struct {
	path string
	perm os.FileMode
}

var _ Sink = (*File)(nil)

// NewFile returns a File sink for path using DefaultFileMode.
func NewFile(path string) *File {
	return &File{path: path, perm: DefaultFileMode}
}

// WithMode returns a copy of f that creates the file with perm.
func (f *File) WithMode(perm os.FileMode) *File {
	return &File{path: f.path, perm: perm}
}

// Path returns the target path.
func (f *File) Path() string {
	return f.path
}

// Write atomically replaces the target file with data.
func (f *File) Write(data []byte) error {
	if err := atomicwriter.WriteFile(f.path, data, f.perm); err != nil {
		return fmt.Errorf("sink: write %s: %w", f.path, err)
	}

	return nil
}

// Writer writes the container to an io.Writer such as stdout.
type Writer struct {
	w io.Writer
}

var _ Sink = (*Writer)(nil)

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes all of data to the underlying writer.
func (w *Writer) Write(data []byte) error {
	n, err := w.w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("sink: write: %w", err)
	}

	return nil
}
