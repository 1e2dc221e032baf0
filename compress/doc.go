// Package compress provides streaming codecs for compressed sequence files.
//
// Sequencing data is almost always shipped compressed, most often as gzip
// (including bgzip), and increasingly as Zstandard. The readers in this
// module only ever see decompressed bytes; this package sits in front of them.
//
// # Supported Containers
//
//   - None: plain text
//   - Gzip: single and multi-member gzip (klauspost/compress/gzip)
//   - Zstd: Zstandard frames (klauspost/compress/zstd, or libzstd via gozstd)
//   - S2: S2 and Snappy framed streams (klauspost/compress/s2)
//   - LZ4: LZ4 frames (pierrec/lz4)
//
// # Detection
//
// Detect recognizes a container from its magic number, and NewReader does
// the sniffing on a live stream:
//
//	rc, ct, err := compress.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	log.Printf("input compression: %s", ct)
//
// Unknown leading bytes are treated as plain text; format detection of the
// decompressed content is left to the caller.
//
// # Build Tags
//
// The gozstd build tag switches the Zstandard codec to the cgo bindings of
// libzstd. Without it (or without cgo) the pure Go implementation is used.
//
// # Thread Safety
//
// Codecs are stateless values and can be shared across goroutines. The
// readers and writers they return are NOT thread-safe.
package compress
