package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/format"
)

// Compressor wraps a destination writer in a compressing stream.
type Compressor interface {
	// NewWriter returns a writer that compresses everything written to it
	// into w. Close flushes the final frame but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Decompressor wraps a compressed source in a decompressing stream.
//
// Example:
//
//	codec, _ := compress.GetCodec(format.CompressionGzip)
//	rc, err := codec.NewReader(f)
//	if err != nil {
//	    return fmt.Errorf("open gzip stream: %w", err)
//	}
//	defer rc.Close()
//
// Thread Safety: the returned readers are NOT thread-safe; codecs themselves
// may be shared across goroutines.
type Decompressor interface {
	// NewReader returns a reader yielding the decompressed content of r.
	// Close releases decoder resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Codec combines both directions for one compression type.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the compression type implemented by the codec.
	Type() format.CompressionType
}

// CompressionStats summarizes one compression run.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the number of bytes before compression
	OriginalSize int64

	// CompressedSize is the number of bytes after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
