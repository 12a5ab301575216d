// Package container produces complete RODB containers from document trees.
//
// A container is the 8-byte header (magic "rodb", version 1) followed by the
// chunk of the root value. The root must be an array or a map; scalar roots
// are rejected before any encoding work starts.
//
// Basic usage:
//
//	enc, err := container.NewEncoder()
//	if err != nil {
//	    return err
//	}
//	data, err := enc.Encode(value.Map{
//	    {Key: value.Str("name"), Val: value.Str("rodb")},
//	})
//
// With compression:
//
//	enc, err := container.NewEncoder(
//	    container.WithCompression(format.CompressionZstd),
//	)
//
// The whole container is built in memory before it is returned, so a failing
// encode never yields partial output. An Encoder holds only immutable
// configuration and is safe for concurrent use.
package container
