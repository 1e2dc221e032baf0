// Package fastq reads and writes FASTQ sequence files.
//
// Every record spans exactly four lines: an '@' header, the sequence, a '+'
// separator and a quality string of the same length as the sequence.
// Multi-line FASTQ is not supported.
package fastq

import (
	"bytes"
	"errors"
	"io"
	"iter"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/internal/lineio"
	"github.com/arloliu/biostream/internal/pool"
	"github.com/arloliu/biostream/record"
	"github.com/arloliu/biostream/stream"
)

var formatName = format.FormatFastq.String()

// Reader parses FASTQ records from a byte stream, decoding each sequence
// with a record.Decoder.
//
// Note: The Reader is NOT thread-safe.
type Reader[S any] struct {
	lines *lineio.Reader
	dec   record.Decoder[S]
	cfg   *stream.Config

	id   *pool.ByteBuffer
	seq  *pool.ByteBuffer
	sep  *pool.ByteBuffer
	qual *pool.ByteBuffer

	done bool
}

var _ record.Reader[[]byte] = (*Reader[[]byte])(nil)

// NewReader creates a FASTQ reader over r using dec to build sequences.
// If r does not implement stream.ByteSource it is wrapped in a bufio.Reader.
func NewReader[S any](r io.Reader, dec record.Decoder[S], opts ...stream.Option) (*Reader[S], error) {
	cfg, err := stream.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader[S]{
		lines: lineio.NewReader(lineio.Wrap(r, cfg.BufferSize())),
		dec:   dec,
		cfg:   cfg,
		id:    pool.GetLineBuffer(),
		seq:   pool.GetSequenceBuffer(),
		sep:   pool.GetLineBuffer(),
		qual:  pool.GetSequenceBuffer(),
	}, nil
}

// Next reads the next record.
//
// The four lines are validated in order and the first violation is
// reported:
//   - end of stream before the header: io.EOF
//   - header not starting with '@': errs.ErrInvalidID
//   - end of stream within the record: errs.ErrTruncatedRecord
//   - separator other than "+": errs.ErrInvalidSeparationLine
//   - quality length differs from sequence length: errs.ErrInvalidQuality
//   - decoder failure: errs.ErrInvalidSequence
//
// Errors are *errs.ParseError values. I/O failures wrap errs.ErrIO.
func (r *Reader[S]) Next() (record.Record[S], error) {
	var rec record.Record[S]
	if r.done {
		return rec, io.EOF
	}

	id, err := r.readLine(r.id)
	if err != nil {
		return rec, r.fail(err)
	}
	if id == nil {
		r.done = true
		return rec, io.EOF
	}
	idLine := r.lines.Line()
	if len(id) == 0 || id[0] != format.FastqHeader {
		return rec, r.fail(errs.NewParseError(errs.ErrInvalidID, formatName, idLine, id))
	}
	id = id[1:]

	seq, err := r.requireLine(r.seq)
	if err != nil {
		return rec, r.fail(err)
	}
	seqLine := r.lines.Line()

	sep, err := r.requireLine(r.sep)
	if err != nil {
		return rec, r.fail(err)
	}
	if !r.validSeparator(sep, id) {
		return rec, r.fail(errs.NewParseError(errs.ErrInvalidSeparationLine, formatName, r.lines.Line(), sep))
	}

	qual, err := r.requireLine(r.qual)
	if err != nil {
		return rec, r.fail(err)
	}
	if len(qual) != len(seq) {
		return rec, r.fail(errs.NewParseError(errs.ErrInvalidQuality, formatName, r.lines.Line(), qual))
	}

	decoded, err := r.dec.Decode(seq)
	if err != nil {
		return rec, r.fail(errs.NewParseError(errs.ErrInvalidSequence, formatName, seqLine, seq).Wrap(err))
	}

	if r.cfg.SharedBuffers() {
		rec.ID = id
	} else {
		rec.ID = bytes.Clone(id)
	}
	rec.Seq = decoded
	rec.Quality = record.PhredsFromBytes(qual)

	return rec, nil
}

// readLine reads one line into buf and returns its content. A nil content
// with a nil error means the stream has ended.
func (r *Reader[S]) readLine(buf *pool.ByteBuffer) ([]byte, error) {
	buf.Reset()
	n, err := r.lines.ReadLine(buf)
	if err != nil {
		return nil, errs.NewParseError(errs.ErrIO, formatName, r.lines.Line()+1, nil).Wrap(err)
	}
	if n == 0 {
		return nil, nil
	}

	return lineio.Content(buf.Bytes()), nil
}

// requireLine is readLine for lines inside a record, where the end of the
// stream means truncation.
func (r *Reader[S]) requireLine(buf *pool.ByteBuffer) ([]byte, error) {
	line, err := r.readLine(buf)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, errs.NewParseError(errs.ErrTruncatedRecord, formatName, r.lines.Line()+1, nil)
	}

	return line, nil
}

func (r *Reader[S]) validSeparator(sep, id []byte) bool {
	if len(sep) == 0 || sep[0] != format.FastqSeparator {
		return false
	}
	if len(sep) == 1 {
		return true
	}

	return r.cfg.LenientSeparator() && bytes.Equal(sep[1:], id)
}

// fail applies the error policy and returns err. An errs.ErrIO failure
// halts the reader under either policy: the source reports it again on
// every later read.
func (r *Reader[S]) fail(err error) error {
	if !r.cfg.ContinueOnError() || errors.Is(err, errs.ErrIO) {
		r.done = true
	}

	return err
}

// All returns an iterator over the remaining records. See stream.All.
func (r *Reader[S]) All() iter.Seq2[record.Record[S], error] {
	return stream.All[S](r)
}

// Poll performs one step and returns its outcome immediately. See stream.Poll.
func (r *Reader[S]) Poll() stream.Result[S] {
	return stream.Poll[S](r)
}

// Close returns the reader's buffers to the shared pools. The reader must not
// be used afterwards. Close does not close the underlying stream.
func (r *Reader[S]) Close() error {
	pool.PutLineBuffer(r.id)
	pool.PutSequenceBuffer(r.seq)
	pool.PutLineBuffer(r.sep)
	pool.PutSequenceBuffer(r.qual)
	r.id, r.seq, r.sep, r.qual = nil, nil, nil, nil
	r.done = true

	return nil
}
