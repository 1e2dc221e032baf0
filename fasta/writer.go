package fasta

import (
	"bufio"
	"io"

	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/record"
)

// Writer writes records in FASTA format.
//
// Note: The Writer is NOT thread-safe.
type Writer[S any] struct {
	w     *bufio.Writer
	enc   record.Encoder[S]
	width int
	buf   []byte
}

// NewWriter creates a FASTA writer over w. Sequences longer than width are
// wrapped onto multiple lines; a width of 0 or less writes each sequence on
// a single line. Quality scores, if any, are dropped.
func NewWriter[S any](w io.Writer, enc record.Encoder[S], width int) *Writer[S] {
	return &Writer[S]{
		w:     bufio.NewWriter(w),
		enc:   enc,
		width: width,
	}
}

// Write writes a single record and returns the number of bytes written.
func (w *Writer[S]) Write(rec record.Record[S]) (int, error) {
	w.buf = Format(w.buf[:0], rec, w.enc, w.width)
	return w.w.Write(w.buf)
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer[S]) Flush() error {
	return w.w.Flush()
}

// Format appends the FASTA text of rec to dst, wrapping the sequence at
// width bytes per line when width > 0.
func Format[S any](dst []byte, rec record.Record[S], enc record.Encoder[S], width int) []byte {
	dst = append(dst, format.FastaHeader)
	dst = append(dst, rec.ID...)
	dst = append(dst, '\n')

	start := len(dst)
	dst = enc.Encode(dst, rec.Seq)
	if width <= 0 || len(dst)-start <= width {
		return append(dst, '\n')
	}

	seq := append([]byte(nil), dst[start:]...)
	dst = dst[:start]
	for len(seq) > width {
		dst = append(dst, seq[:width]...)
		dst = append(dst, '\n')
		seq = seq[width:]
	}
	dst = append(dst, seq...)

	return append(dst, '\n')
}
