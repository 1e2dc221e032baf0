package compress

import (
	"bufio"
	"io"

	"github.com/arloliu/biostream/format"
)

// NoOpCodec passes data through unchanged. It is used for plain text input
// so that callers can treat every stream alike.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a new pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// NewReader returns r with a no-op Close. A *bufio.Reader keeps its
// ReadSlice method so that line readers do not buffer it twice.
func (NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	if br, ok := r.(*bufio.Reader); ok {
		return bufferedReadCloser{br}, nil
	}

	return io.NopCloser(r), nil
}

// NewWriter returns w with a no-op Close.
func (NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

type bufferedReadCloser struct {
	*bufio.Reader
}

func (bufferedReadCloser) Close() error { return nil }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
