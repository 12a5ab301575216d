// Package compress provides the optional compression step applied to a finished
// RODB container.
//
// Compression is an opaque post-process: the codec sees the complete container
// buffer and knows nothing about its chunk structure. A compressed container has
// to be decompressed in full before its offsets can be used, so compression trades
// random access for size and is meant for transport or archival copies.
//
// Every codec rejects input larger than section.MaxContainerSize with
// errs.ErrContainerTooLarge, checks any decoded size the compressed form
// declares before allocating, and reports undecodable input with
// errs.ErrInvalidCompressedData.
//
// Supported algorithms:
//   - None: No compression (default)
//   - Zstd: Best ratio (klauspost/compress/zstd, or valyala/gozstd with the gozstd build tag)
//   - S2: Balanced speed and ratio (klauspost/compress/s2)
//   - LZ4: Fastest decompression, size-prefixed LZ4 block (pierrec/lz4/v4)
//
// Example:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(container)
//
// # Thread Safety
//
// All codec implementations are stateless values backed by internal pools and
// can be shared across goroutines.
package compress
