// Package encoding implements the recursive value-to-chunk transform of the RODB format.
//
// ChunkEncoder walks a value.Value tree children-first and appends one chunk per
// value to a pooled buffer. Lengths and offsets that depend on children are
// reserved up front and back-patched once the children are written, so the whole
// tree is encoded in a single pass without intermediate per-item buffers.
//
// # Arrays
//
// An array payload is the element count, an offset table with one entry per
// element, and the element chunks in order. offsets[i] is the byte position of
// element i relative to the first byte after the table, so a reader can seek to
// any element without decoding its predecessors:
//
//	count | off[0]=0 | off[1] | ... | chunk[0] | chunk[1] | ...
//
// # Maps
//
// A map payload is the entry count, the byte length of the keys chunk, the keys
// chunk and the values chunk. Keys are sorted byte-lexicographically and stored
// as an array of strings; values are stored as an array in the same order:
//
//	count | keysLen | a[ s"k0", s"k1", ... ] | a[ v0, v1, ... ]
//
// All keys of a map are validated before any byte of that map is written.
//
// # Thread Safety
//
// A ChunkEncoder is NOT safe for concurrent use. Independent encoders may run in
// parallel on independent trees.
package encoding
