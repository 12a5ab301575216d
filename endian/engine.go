// Package endian provides the byte order engine used to read and write RODB data.
//
// RODB is little-endian on every platform. The EndianEngine interface combines the
// ByteOrder and AppendByteOrder interfaces of encoding/binary so that encoders can
// both append values and back-patch values already written to a buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, count)      // append
//	engine.PutUint32(buf[start:], payloadLen)  // back-patch
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the RODB format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
