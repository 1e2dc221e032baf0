package record

import (
	"fmt"
)

// Record is one parsed FASTA or FASTQ entry.
type Record[S any] struct {
	// ID is the header line content without its marker and line terminator.
	ID []byte
	// Seq is the decoded sequence.
	Seq S
	// Quality holds one score per sequence byte for FASTQ records and is nil
	// for FASTA records.
	Quality []Phred
}

// HasQuality reports whether the record carries quality scores.
func (r Record[S]) HasQuality() bool {
	return r.Quality != nil
}

// Name returns the identifier up to the first space or tab.
func (r Record[S]) Name() []byte {
	for i, b := range r.ID {
		if b == ' ' || b == '\t' {
			return r.ID[:i]
		}
	}

	return r.ID
}

// Description returns the identifier text after the first space or tab, or
// nil if there is none.
func (r Record[S]) Description() []byte {
	for i, b := range r.ID {
		if b == ' ' || b == '\t' {
			return r.ID[i+1:]
		}
	}

	return nil
}

// QualityBytes returns the Phred+33 encoded quality string.
func (r Record[S]) QualityBytes() []byte {
	if r.Quality == nil {
		return nil
	}
	out := make([]byte, len(r.Quality))
	for i, q := range r.Quality {
		out[i] = q.Byte()
	}

	return out
}

// String formats the record as "<id>\t<seq>".
func (r Record[S]) String() string {
	return fmt.Sprintf("%s\t%v", r.ID, seqString(r.Seq))
}

func seqString(s any) any {
	if b, ok := s.([]byte); ok {
		return string(b)
	}

	return s
}

// Reader is implemented by every record source in biostream.
//
// Next returns io.EOF once the stream has ended cleanly, and keeps returning
// io.EOF afterwards.
type Reader[S any] interface {
	Next() (Record[S], error)
}
