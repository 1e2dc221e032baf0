package stream

import (
	"fmt"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/internal/lineio"
	"github.com/arloliu/biostream/internal/options"
)

// ByteSource is the buffered byte stream readers consume. *bufio.Reader
// satisfies it; any other io.Reader is wrapped in one.
type ByteSource = lineio.ByteSource

// MinBufferSize is the smallest accepted read buffer size.
const MinBufferSize = 16

// Config holds the settings shared by the FASTA and FASTQ readers.
type Config struct {
	bufferSize       int
	continueOnError  bool
	sharedBuffers    bool
	lenientSeparator bool
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{bufferSize: lineio.DefaultBufferSize}
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the combined settings.
func (c *Config) Validate() error {
	if c.bufferSize < MinBufferSize {
		return fmt.Errorf("%w: %d is below the minimum of %d", errs.ErrInvalidBufferSize, c.bufferSize, MinBufferSize)
	}

	return nil
}

// BufferSize returns the read buffer size used when wrapping a plain io.Reader.
func (c *Config) BufferSize() int {
	return c.bufferSize
}

// ContinueOnError reports whether a reader keeps reading after an error.
func (c *Config) ContinueOnError() bool {
	return c.continueOnError
}

// SharedBuffers reports whether record identifiers alias reader buffers.
func (c *Config) SharedBuffers() bool {
	return c.sharedBuffers
}

// LenientSeparator reports whether FASTQ separator lines may repeat the identifier.
func (c *Config) LenientSeparator() bool {
	return c.lenientSeparator
}

// Option is a functional option for configuring readers.
type Option = options.Option[*Config]

// WithBufferSize sets the bufio buffer size used when the input is a plain
// io.Reader. It has no effect when the input already is a ByteSource.
// Default is 64KiB.
func WithBufferSize(n int) Option {
	return options.NoError(func(c *Config) {
		c.bufferSize = n
	})
}

// WithContinueOnError lets a reader attempt the next record after a parse
// error, starting from wherever the failed step left the stream. By
// default a reader halts after its first error and reports io.EOF from then on.
//
// Continuing after a FASTQ structural error usually reads from a misaligned
// offset; use it when the caller can tolerate cascading errors.
//
// Only malformed records are skipped. An errs.ErrIO failure, such as a
// truncated gzip member, still halts the reader.
func WithContinueOnError() Option {
	return options.NoError(func(c *Config) {
		c.continueOnError = true
	})
}

// WithSharedBuffers makes Record.ID alias the reader's internal buffer
// instead of an owned copy. A record read this way is only valid until the
// following call to Next.
func WithSharedBuffers() Option {
	return options.NoError(func(c *Config) {
		c.sharedBuffers = true
	})
}

// WithLenientSeparator accepts FASTQ separator lines of the form "+<id>"
// where <id> repeats the record identifier. By default only "+" is accepted.
// FASTA readers ignore this option.
func WithLenientSeparator() Option {
	return options.NoError(func(c *Config) {
		c.lenientSeparator = true
	})
}
