// Package errs defines the error values reported by biostream readers.
//
// Parse failures are reported as *ParseError values which unwrap to one of the
// sentinel errors below, so callers can branch with errors.Is:
//
//	rec, err := r.Next()
//	switch {
//	case errors.Is(err, io.EOF):
//	    // clean end of stream
//	case errors.Is(err, errs.ErrInvalidQuality):
//	    // quality line length differs from the sequence line
//	}
package errs

import (
	"errors"
	"fmt"
)

// Record level errors.
var (
	// ErrInvalidID is returned when a header line lacks its leading marker.
	ErrInvalidID = errors.New("invalid id")
	// ErrTruncatedRecord is returned when the stream ends in the middle of a record.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrInvalidSequence is returned when the decoder rejects the sequence bytes.
	ErrInvalidSequence = errors.New("invalid sequence")
	// ErrInvalidQuality is returned when the quality line length differs from the sequence length.
	ErrInvalidQuality = errors.New("invalid quality string")
	// ErrInvalidSeparationLine is returned when the FASTQ separator line is malformed.
	ErrInvalidSeparationLine = errors.New("invalid separation line")
	// ErrIO is returned when the underlying byte source fails.
	ErrIO = errors.New("read error")
)

// Stream level errors.
var (
	ErrDiscordantPairs        = errors.New("paired streams have different record counts")
	ErrUnknownFormat          = errors.New("unknown sequence format")
	ErrUnsupportedCompression = errors.New("unsupported compression")
	ErrMissingQuality         = errors.New("record has no quality scores")
	ErrInvalidBufferSize      = errors.New("invalid buffer size")
	ErrInvalidKmerSize        = errors.New("invalid k-mer size")
	ErrDuplicateID            = errors.New("duplicate record id")
)

// maxTextLen bounds the offending text shown by ParseError.Error.
const maxTextLen = 64

// ParseError describes one malformed record.
type ParseError struct {
	// Kind is one of the record level sentinel errors, or ErrUnknownFormat
	// for a stream whose first line starts with no known marker.
	Kind error
	// Format names the input format ("FASTA" or "FASTQ").
	Format string
	// Line is the 1-based line number where the violation was detected, 0 if unknown.
	Line int
	// Text is the offending raw text, if any.
	Text string
	// Err is the underlying cause (I/O or decoder error), if any.
	Err error
}

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind error, format string, line int, text []byte) *ParseError {
	return &ParseError{Kind: kind, Format: format, Line: line, Text: string(text)}
}

// Wrap sets the underlying cause and returns e.
func (e *ParseError) Wrap(err error) *ParseError {
	e.Err = err
	return e
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Format != "" {
		msg = e.Format + ": " + msg
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Text != "" {
		msg = fmt.Sprintf("%s: %q", msg, truncate(e.Text))
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func truncate(s string) string {
	if len(s) <= maxTextLen {
		return s
	}

	return s[:maxTextLen] + "..."
}
