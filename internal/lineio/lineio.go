// Package lineio implements the incremental line reader shared by the FASTA
// and FASTQ readers.
package lineio

import (
	"bufio"
	"errors"
	"io"

	"github.com/arloliu/biostream/internal/pool"
)

// DefaultBufferSize is the bufio buffer size used when wrapping a plain io.Reader.
const DefaultBufferSize = 64 * 1024

// ByteSource is a buffered, delimiter-aware byte stream. *bufio.Reader
// satisfies it.
type ByteSource interface {
	ReadSlice(delim byte) (line []byte, err error)
}

// Wrap returns r as a ByteSource, wrapping it in a bufio.Reader of the given
// size when it does not already implement ByteSource.
func Wrap(r io.Reader, size int) ByteSource {
	if src, ok := r.(ByteSource); ok {
		return src
	}
	if size <= 0 {
		size = DefaultBufferSize
	}

	return bufio.NewReaderSize(r, size)
}

// Reader reads newline-terminated chunks from a ByteSource.
//
// Note: Reader is NOT thread-safe.
type Reader struct {
	src  ByteSource
	line int
	eof  bool
}

// NewReader creates a Reader over src.
func NewReader(src ByteSource) *Reader {
	return &Reader{src: src}
}

// ReadLine appends the next line, terminator included, to buf and returns the
// number of bytes appended. A final line without terminator is returned as is.
// Zero bytes with a nil error means the stream has ended; every later call
// returns zero as well.
//
// Lines longer than the source's internal buffer are stitched together.
func (r *Reader) ReadLine(buf *pool.ByteBuffer) (int, error) {
	if r.eof {
		return 0, nil
	}

	n := 0
	for {
		chunk, err := r.src.ReadSlice('\n')
		buf.MustWrite(chunk)
		n += len(chunk)

		switch {
		case err == nil:
			r.line++
			return n, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			r.eof = true
			if n > 0 {
				r.line++
			}

			return n, nil
		default:
			return n, err
		}
	}
}

// Line returns the number of lines read so far, i.e. the 1-based number of
// the most recently read line.
func (r *Reader) Line() int {
	return r.line
}

// ContentEnd returns the end of the usable content of line: len-2 when it
// ends in "\r\n", len-1 when it ends in "\n", otherwise len.
func ContentEnd(line []byte) int {
	n := len(line)
	if n == 0 || line[n-1] != '\n' {
		return n
	}
	if n >= 2 && line[n-2] == '\r' {
		return n - 2
	}

	return n - 1
}

// Content returns line without its terminator.
func Content(line []byte) []byte {
	return line[:ContentEnd(line)]
}
