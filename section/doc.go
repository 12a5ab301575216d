// Package section defines the fixed-size binary structures and layout constants of the
// RODB container format.
//
// # Container Structure
//
// A container is an 8-byte header followed by exactly one chunk holding the root
// value, which is always an array or a map:
//
//	┌───────────────────────────────────────────────┐
//	│ Container header (8 bytes)                     │
//	│  - Magic "rodb" (4 bytes)                      │
//	│  - Version, LE uint32 = 1 (4 bytes)            │
//	├───────────────────────────────────────────────┤
//	│ Root chunk (array or map)                      │
//	└───────────────────────────────────────────────┘
//
// # Chunk Structure
//
// Every encoded value is a chunk. A chunk is self-delimiting: reading the 8-byte
// header at its offset is enough to skip it.
//
//	┌──────────────┬───────────────────┬───────────────────┐
//	│ Tag (4B)     │ Length (4B LE)    │ Payload (Length B)│
//	└──────────────┴───────────────────┴───────────────────┘
//
// Payloads by type:
//
//	b  LE uint32, 0 or 1
//	i  LE int32
//	f  IEEE-754 binary32, little-endian
//	s  string bytes followed by one NUL
//	a  count (u32) | count × offset (u32) | item chunks
//	m  count (u32) | keys chunk length (u32) | keys array chunk | values array chunk
//
// Array offsets are relative to the first byte after the offset table, so item i
// starts at payload + CountSize + count*OffsetEntrySize + offsets[i].
//
// A map stores its keys, sorted byte-lexicographically, as an array of strings and
// its values as a second array in the same order. Readers binary-search the keys
// array and use the found index in the values array.
//
// # Byte Order
//
// All multi-byte integers are little-endian.
package section
