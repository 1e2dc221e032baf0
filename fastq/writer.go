package fastq

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/record"
)

// Writer writes records in four-line FASTQ format.
//
// Note: The Writer is NOT thread-safe.
type Writer[S any] struct {
	w   *bufio.Writer
	enc record.Encoder[S]
	buf []byte
}

// NewWriter creates a FASTQ writer over w.
func NewWriter[S any](w io.Writer, enc record.Encoder[S]) *Writer[S] {
	return &Writer[S]{
		w:   bufio.NewWriter(w),
		enc: enc,
	}
}

// Write writes a single record and returns the number of bytes written.
// Nothing is written when the record cannot be formatted.
func (w *Writer[S]) Write(rec record.Record[S]) (int, error) {
	var err error
	w.buf, err = Format(w.buf[:0], rec, w.enc)
	if err != nil {
		return 0, err
	}

	return w.w.Write(w.buf)
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer[S]) Flush() error {
	return w.w.Flush()
}

// Format appends the FASTQ text of rec to dst.
//
// Returns errs.ErrMissingQuality for records without quality scores and
// errs.ErrInvalidQuality when the number of scores differs from the encoded
// sequence length. On error dst is returned unchanged.
func Format[S any](dst []byte, rec record.Record[S], enc record.Encoder[S]) ([]byte, error) {
	if !rec.HasQuality() {
		return dst, fmt.Errorf("%w: %s", errs.ErrMissingQuality, rec.ID)
	}

	start := len(dst)
	dst = append(dst, format.FastqHeader)
	dst = append(dst, rec.ID...)
	dst = append(dst, '\n')

	seqStart := len(dst)
	dst = enc.Encode(dst, rec.Seq)
	if n := len(dst) - seqStart; n != len(rec.Quality) {
		return dst[:start], fmt.Errorf("%w: %d scores for %d bases in %s",
			errs.ErrInvalidQuality, len(rec.Quality), n, rec.ID)
	}

	dst = append(dst, '\n', format.FastqSeparator, '\n')
	for _, q := range rec.Quality {
		dst = append(dst, q.Byte())
	}

	return append(dst, '\n'), nil
}
