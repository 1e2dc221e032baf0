// Package fasta reads and writes FASTA sequence files.
//
// A record starts with a '>' header line followed by any number of sequence
// lines, which are concatenated verbatim. The record ends at the next header
// line or at the end of the stream.
package fasta

import (
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

var formatName = format.FormatFasta.String()

// Reader parses FASTA records from a byte stream, decoding each sequence
// with a record.Decoder.
//
// The reader holds one line of lookahead: a record boundary is only known
// once the next header has been read, and that header is kept for the
// following call to Next.
//
// Note: The Reader is NOT thread-safe.
type Reader[S any] struct {
	lines *lineio.Reader
	dec   record.Decoder[S]
	cfg   *stream.Config

	line   *pool.ByteBuffer // scratch for the line being read
	header *pool.ByteBuffer // buffered header of the record to emit next
	next   *pool.ByteBuffer // header that ended the current record
	seq    *pool.ByteBuffer // accumulated sequence bytes

	hasHeader  bool
	headerLine int
	done       bool
}

var _ record.Reader[[]byte] = (*Reader[[]byte])(nil)

// NewReader creates a FASTA reader over r using dec to build sequences.
// If r does not implement stream.ByteSource it is wrapped in a bufio.Reader.
//
// Parameters:
//   - r: Input stream, already decompressed
//   - dec: Sequence decoder, e.g. record.Raw{}
//   - opts: Reader options (see stream.Option)
//
// Returns:
//   - *Reader[S]: New reader positioned before the first record
//   - error: Invalid option values
func NewReader[S any](r io.Reader, dec record.Decoder[S], opts ...stream.Option) (*Reader[S], error) {
	cfg, err := stream.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader[S]{
		lines:  lineio.NewReader(lineio.Wrap(r, cfg.BufferSize())),
		dec:    dec,
		cfg:    cfg,
		line:   pool.GetLineBuffer(),
		header: pool.GetLineBuffer(),
		next:   pool.GetLineBuffer(),
		seq:    pool.GetSequenceBuffer(),
	}, nil
}

// Next reads the next record.
//
// Returns io.EOF once the stream has ended at a record boundary, and on every
// call after that. Malformed input is reported as an *errs.ParseError
// wrapping errs.ErrInvalidID, errs.ErrInvalidSequence or errs.ErrIO.
func (r *Reader[S]) Next() (record.Record[S], error) {
	var rec record.Record[S]
	if r.done {
		return rec, io.EOF
	}

	if !r.hasHeader {
		ok, err := r.readHeader()
		if err != nil {
			return rec, r.fail(err)
		}
		if !ok {
			r.done = true
			return rec, io.EOF
		}
	}

	idLine := r.headerLine
	eof, err := r.readSequence()
	if err != nil {
		return rec, r.fail(err)
	}

	seq, err := r.dec.Decode(r.seq.Bytes())
	if err != nil {
		r.advance(eof)
		return rec, r.fail(errs.NewParseError(errs.ErrInvalidSequence, formatName, idLine+1, r.seq.Bytes()).Wrap(err))
	}

	if r.cfg.SharedBuffers() {
		rec.ID = r.header.Bytes()
	} else {
		rec.ID = r.header.Clone()
	}
	rec.Seq = seq
	r.advance(eof)

	return rec, nil
}

// readHeader reads the first header line of the stream, or the first line
// after a failed step. It reports false at a clean end of stream.
func (r *Reader[S]) readHeader() (bool, error) {
	r.line.Reset()
	n, err := r.lines.ReadLine(r.line)
	if err != nil {
		return false, errs.NewParseError(errs.ErrIO, formatName, r.lines.Line()+1, nil).Wrap(err)
	}
	if n == 0 {
		return false, nil
	}

	content := lineio.Content(r.line.Bytes())
	if len(content) == 0 || content[0] != format.FastaHeader {
		return false, errs.NewParseError(errs.ErrInvalidID, formatName, r.lines.Line(), content)
	}

	r.header.Reset()
	r.header.MustWrite(content[1:])
	r.headerLine = r.lines.Line()
	r.hasHeader = true

	return true, nil
}

// readSequence accumulates sequence lines until the next header, which is
// stored in r.next, or the end of the stream, reported as eof.
func (r *Reader[S]) readSequence() (eof bool, err error) {
	r.seq.Reset()
	for {
		r.line.Reset()
		n, err := r.lines.ReadLine(r.line)
		if err != nil {
			return false, errs.NewParseError(errs.ErrIO, formatName, r.lines.Line()+1, nil).Wrap(err)
		}
		if n == 0 {
			return true, nil
		}

		content := lineio.Content(r.line.Bytes())
		if len(content) > 0 && content[0] == format.FastaHeader {
			r.next.Reset()
			r.next.MustWrite(content[1:])

			return false, nil
		}
		r.seq.MustWrite(content)
	}
}

// advance makes the lookahead header current. In shared mode the buffers are
// swapped so the emitted ID stays valid until the following step.
func (r *Reader[S]) advance(eof bool) {
	if eof {
		r.hasHeader = false
		return
	}
	r.header, r.next = r.next, r.header
	r.headerLine = r.lines.Line()
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
// be used afterwards, and records read with shared buffers become invalid.
// Close does not close the underlying stream.
func (r *Reader[S]) Close() error {
	pool.PutLineBuffer(r.line)
	pool.PutLineBuffer(r.header)
	pool.PutLineBuffer(r.next)
	pool.PutSequenceBuffer(r.seq)
	r.line, r.header, r.next, r.seq = nil, nil, nil, nil
	r.done = true

	return nil
}
