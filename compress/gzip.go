package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/biostream/format"
)

// GzipCodec handles gzip streams, including the multi-member files produced
// by bgzip and by concatenating .gz files.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

// Type returns format.CompressionGzip.
func (GzipCodec) Type() format.CompressionType {
	return format.CompressionGzip
}

// NewReader opens a gzip stream. The gzip header is read immediately, so a
// corrupt header is reported here rather than on the first Read.
func (GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: open stream: %w", err)
	}

	return zr, nil
}

// NewWriter returns a gzip writer using the default compression level.
func (GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
