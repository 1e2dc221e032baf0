// Package biostream provides streaming readers for FASTA and FASTQ sequence
// files.
//
// Records are parsed one at a time from any io.Reader, with bounded memory
// and reusable internal buffers. Sequences are converted by a pluggable
// record.Decoder, so callers choose the in-memory representation: raw
// bytes, strings, or validated alphabet sequences.
//
// # Core Features
//
//   - Multi-line FASTA and four-line FASTQ parsing
//   - LF and CRLF line endings
//   - Typed parse errors carrying line numbers and offending text
//   - Range-over-func iteration and single-step polling
//   - Transparent gzip, Zstandard, S2/Snappy and LZ4 decompression
//   - Paired-end stream zipping with mate name checks
//
// # Basic Usage
//
// Reading a file of unknown format and compression:
//
//	f, _ := os.Open("reads.fq.gz")
//	defer f.Close()
//
//	r, err := biostream.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for rec, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s\t%d\n", rec.ID, len(rec.Seq))
//	}
//
// Reading validated DNA:
//
//	r, err := biostream.NewTypedReader(f, alphabet.Codec(alphabet.DNA))
//
// # Package Structure
//
// This package wraps the fasta, fastq and compress packages for the common
// case. Use those packages directly for fine-grained control, and the
// stream package for the reader options.
package biostream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/biostream/compress"
	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/fasta"
	"github.com/arloliu/biostream/fastq"
	"github.com/arloliu/biostream/format"
	"github.com/arloliu/biostream/internal/hash"
	"github.com/arloliu/biostream/internal/lineio"
	"github.com/arloliu/biostream/record"
	"github.com/arloliu/biostream/stream"
)

// parser is implemented by fasta.Reader and fastq.Reader.
type parser[S any] interface {
	record.Reader[S]
	io.Closer
}

type peekReader interface {
	io.Reader
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
}

// utf8BOM is skipped when it precedes the first marker.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// maxSniffLen bounds the first line quoted by an unknown format error.
const maxSniffLen = 128

// Reader reads records from a FASTA or FASTQ stream whose format and
// compression were detected from its leading bytes.
//
// Note: The Reader is NOT thread-safe.
type Reader[S any] struct {
	p           parser[S]
	src         io.Closer
	format      format.SequenceFormat
	compression format.CompressionType
}

var _ record.Reader[[]byte] = (*Reader[[]byte])(nil)

// NewReader opens a stream of raw records. See NewTypedReader.
func NewReader(r io.Reader, opts ...stream.Option) (*Reader[[]byte], error) {
	return NewTypedReader[[]byte](r, record.Raw{}, opts...)
}

// NewTypedReader detects the compression and format of r and returns a
// reader decoding sequences with dec.
//
// The first byte of the decompressed content selects the format: '>' for
// FASTA and '@' for FASTQ, after an optional UTF-8 byte order mark. Any
// other byte yields an *errs.ParseError of kind errs.ErrUnknownFormat quoting
// the first line. An empty stream yields a reader that reports io.EOF
// immediately.
//
// Parameters:
//   - r: Input stream, plain or compressed
//   - dec: Sequence decoder
//   - opts: Reader options (see stream.Option)
//
// Returns:
//   - *Reader[S]: Reader positioned before the first record
//   - error: Invalid options, unsupported compression or unknown format
func NewTypedReader[S any](r io.Reader, dec record.Decoder[S], opts ...stream.Option) (*Reader[S], error) {
	cfg, err := stream.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	rc, ct, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}

	var src peekReader
	if pr, ok := rc.(peekReader); ok {
		src = pr
	} else {
		src = bufio.NewReaderSize(rc, cfg.BufferSize())
	}

	if bom, _ := src.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		_, _ = src.Discard(len(utf8BOM))
	}

	head, err := src.Peek(1)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = rc.Close()
		return nil, fmt.Errorf("detect format: %w", err)
	}

	out := &Reader[S]{src: rc, compression: ct}
	if len(head) == 0 {
		out.p = emptyParser[S]{}
		return out, nil
	}

	out.format = format.DetectFormat(head[0])
	switch out.format {
	case format.FormatFasta:
		out.p, err = fasta.NewReader(src, dec, opts...)
	case format.FormatFastq:
		out.p, err = fastq.NewReader(src, dec, opts...)
	default:
		err = unknownFormat(src)
	}
	if err != nil {
		_ = rc.Close()
		return nil, err
	}

	return out, nil
}

// NewFastaReader creates a raw FASTA reader over an uncompressed stream.
func NewFastaReader(r io.Reader, opts ...stream.Option) (*fasta.Reader[[]byte], error) {
	return fasta.NewReader(r, record.Raw{}, opts...)
}

// NewFastqReader creates a raw FASTQ reader over an uncompressed stream.
func NewFastqReader(r io.Reader, opts ...stream.Option) (*fastq.Reader[[]byte], error) {
	return fastq.NewReader(r, record.Raw{}, opts...)
}

// Format returns the detected sequence format, FormatUnknown for an empty stream.
func (r *Reader[S]) Format() format.SequenceFormat {
	return r.format
}

// Compression returns the detected compression type.
func (r *Reader[S]) Compression() format.CompressionType {
	return r.compression
}

// Next reads the next record. See fasta.Reader.Next and fastq.Reader.Next.
func (r *Reader[S]) Next() (record.Record[S], error) {
	return r.p.Next()
}

// All returns an iterator over the remaining records. See stream.All.
func (r *Reader[S]) All() iter.Seq2[record.Record[S], error] {
	return stream.All[S](r)
}

// Poll performs one step and returns its outcome immediately. See stream.Poll.
func (r *Reader[S]) Poll() stream.Result[S] {
	return stream.Poll[S](r)
}

// Close releases the parser buffers and the decompressor. It does not close
// the underlying stream.
func (r *Reader[S]) Close() error {
	perr := r.p.Close()
	if err := r.src.Close(); err != nil {
		return err
	}

	return perr
}

// RecordID returns the 64-bit xxHash fingerprint of a record identifier,
// as used for duplicate detection.
func RecordID(id []byte) uint64 {
	return hash.ID(id)
}

// unknownFormat reports the first line of a stream that starts with
// neither '>' nor '@'.
func unknownFormat(src peekReader) error {
	line, _ := src.Peek(maxSniffLen)
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i+1]
	}

	return errs.NewParseError(errs.ErrUnknownFormat, "", 1, lineio.Content(line))
}

type emptyParser[S any] struct{}

func (emptyParser[S]) Next() (record.Record[S], error) {
	return record.Record[S]{}, io.EOF
}

func (emptyParser[S]) Close() error { return nil }
