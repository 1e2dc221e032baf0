package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/biostream/format"
)

// S2Codec handles the S2 framed stream format. Snappy framed streams are
// decoded as well, since S2 is a superset of Snappy.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewReader opens an S2 or Snappy framed stream.
func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

// NewWriter returns an S2 stream writer.
func (S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}
