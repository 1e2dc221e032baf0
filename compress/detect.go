package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/biostream/format"
)

// DetectBufferSize is the size of the buffered reader NewReader places in
// front of the source, and therefore of the peek window.
const DetectBufferSize = 64 * 1024

// Magic numbers of the supported containers.
var (
	gzipMagic    = []byte{0x1f, 0x8b}
	zstdMagic    = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic     = []byte{0x04, 0x22, 0x4d, 0x18}
	s2StreamHead = []byte{0xff, 0x06, 0x00, 0x00}
	s2Magic      = []byte("S2sTwO")
	snappyMagic  = []byte("sNaPpY")
)

// magicLen is the number of leading bytes Detect needs to tell all formats apart.
const magicLen = 10

// Detect identifies the compression container from the leading bytes of a
// stream. Anything that is not a known container is reported as
// format.CompressionNone.
func Detect(header []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return format.CompressionGzip
	case bytes.HasPrefix(header, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(header, s2StreamHead) && len(header) >= magicLen:
		id := header[len(s2StreamHead):magicLen]
		if bytes.Equal(id, s2Magic) || bytes.Equal(id, snappyMagic) {
			return format.CompressionS2
		}
	}

	return format.CompressionNone
}

// NewReader sniffs the compression container of r and returns a reader over
// the decompressed content together with the detected type.
//
// Plain input is returned as a *bufio.Reader based stream whose ReadSlice
// method is preserved, so the sequence readers use it without another
// buffering layer. Closing the returned reader does not close r.
func NewReader(r io.Reader) (io.ReadCloser, format.CompressionType, error) {
	br, ok := r.(*bufio.Reader)
	if !ok || br.Size() < magicLen {
		br = bufio.NewReaderSize(r, DetectBufferSize)
	}

	header, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("detect compression: %w", err)
	}

	ct := Detect(header)
	codec, err := GetCodec(ct)
	if err != nil {
		return nil, 0, err
	}

	rc, err := codec.NewReader(br)
	if err != nil {
		return nil, 0, err
	}

	return rc, ct, nil
}

// NewWriter returns a writer compressing into w with the given type.
func NewWriter(w io.Writer, ct format.CompressionType) (io.WriteCloser, error) {
	codec, err := GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return codec.NewWriter(w)
}
