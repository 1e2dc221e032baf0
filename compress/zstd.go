package compress

import "github.com/arloliu/biostream/format"

// ZstdCodec handles Zstandard streams.
//
// The default build uses the pure Go decoder from klauspost/compress. Build
// with the gozstd tag (and cgo enabled) to use the libzstd bindings instead.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
