package format

import (
	"fmt"
	"strings"
)

type (
	SequenceFormat  uint8
	CompressionType uint8
)

const (
	FormatUnknown SequenceFormat = 0x0 // FormatUnknown is reported when the first payload byte matches no format.
	FormatFasta   SequenceFormat = 0x1 // FormatFasta represents '>'-headed multi-line FASTA records.
	FormatFastq   SequenceFormat = 0x2 // FormatFastq represents fixed 4-line FASTQ records.

	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain text stream.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents (multi-member) gzip.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard frames.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents the S2/Snappy framed stream format.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frames.
)

// Header markers for the supported formats.
const (
	FastaHeader    byte = '>'
	FastqHeader    byte = '@'
	FastqSeparator byte = '+'
)

func (f SequenceFormat) String() string {
	switch f {
	case FormatFasta:
		return "FASTA"
	case FormatFastq:
		return "FASTQ"
	default:
		return "Unknown"
	}
}

// DetectFormat reports the format whose header marker matches b.
func DetectFormat(b byte) SequenceFormat {
	switch b {
	case FastaHeader:
		return FormatFasta
	case FastqHeader:
		return FormatFastq
	default:
		return FormatUnknown
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the conventional file extension for the compression type,
// including the leading dot. CompressionNone has no extension.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression parses a compression name as accepted on the command line.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2", "snappy":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
