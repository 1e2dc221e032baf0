//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader opens a Zstandard stream using libzstd.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{zr: gozstd.NewReader(r)}, nil
}

// NewWriter returns a Zstandard writer using libzstd at level 3.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{zw: gozstd.NewWriterLevel(w, 3)}, nil
}

type gozstdReader struct {
	zr *gozstd.Reader
}

func (g *gozstdReader) Read(p []byte) (int, error) {
	if g.zr == nil {
		return 0, io.ErrClosedPipe
	}

	return g.zr.Read(p)
}

func (g *gozstdReader) Close() error {
	if g.zr != nil {
		g.zr.Release()
		g.zr = nil
	}

	return nil
}

type gozstdWriter struct {
	zw *gozstd.Writer
}

func (g *gozstdWriter) Write(p []byte) (int, error) {
	if g.zw == nil {
		return 0, io.ErrClosedPipe
	}

	return g.zw.Write(p)
}

func (g *gozstdWriter) Close() error {
	if g.zw == nil {
		return nil
	}
	err := g.zw.Close()
	g.zw.Release()
	g.zw = nil

	return err
}
