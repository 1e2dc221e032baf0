// Package pair reads paired-end sequencing data from two parallel streams.
//
// The two readers are advanced in lockstep. Each pair carries the result of
// a name check (CheckNames) so callers can flag mates whose identifiers do
// not match without aborting the scan.
package pair

import (
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/record"
)

// Flag is a set of name check findings.
type Flag uint8

const (
	// SuffixMismatch is set when the first identifier does not end in '1'
	// or the second does not end in '2'.
	SuffixMismatch Flag = 1 << iota
	// PrefixMismatch is set when the identifiers differ before their last byte.
	PrefixMismatch
)

// Has reports whether all flags in x are set in f.
func (f Flag) Has(x Flag) bool {
	return f&x == x
}

func (f Flag) String() string {
	if f == 0 {
		return "OK"
	}

	var parts []string
	if f.Has(SuffixMismatch) {
		parts = append(parts, "SuffixMismatch")
	}
	if f.Has(PrefixMismatch) {
		parts = append(parts, "PrefixMismatch")
	}

	return strings.Join(parts, "|")
}

// CheckNames compares the identifiers of two mates, e.g. "read/1" and
// "read/2". Empty identifiers fail both checks.
func CheckNames(id1, id2 []byte) Flag {
	var f Flag
	if len(id1) == 0 || len(id2) == 0 {
		return SuffixMismatch | PrefixMismatch
	}
	if id1[len(id1)-1] != '1' || id2[len(id2)-1] != '2' {
		f |= SuffixMismatch
	}
	if string(id1[:len(id1)-1]) != string(id2[:len(id2)-1]) {
		f |= PrefixMismatch
	}

	return f
}

// Pair holds two mates read at the same position of their streams.
type Pair[S any] struct {
	R1, R2 record.Record[S]
	// Flags holds the CheckNames result for the mates' identifiers.
	Flags Flag
}

// OK reports whether the mates passed the name check.
func (p Pair[S]) OK() bool {
	return p.Flags == 0
}

// Reader advances two record readers in lockstep.
//
// Note: The Reader is NOT thread-safe.
type Reader[S any] struct {
	r1, r2 record.Reader[S]
	done   bool
}

// NewReader creates a pair reader over the R1 and R2 streams.
func NewReader[S any](r1, r2 record.Reader[S]) *Reader[S] {
	return &Reader[S]{r1: r1, r2: r2}
}

// Next reads one record from each stream.
//
// Returns io.EOF when both streams end together, and errs.ErrDiscordantPairs
// when only one of them does. Errors from either reader are returned as is
// (joined when both fail). A Reader halts after its first error, since the
// two streams can no longer be assumed aligned, and reports io.EOF from
// then on.
func (p *Reader[S]) Next() (Pair[S], error) {
	var pr Pair[S]
	if p.done {
		return pr, io.EOF
	}

	rec1, err1 := p.r1.Next()
	rec2, err2 := p.r2.Next()
	eof1, eof2 := errors.Is(err1, io.EOF), errors.Is(err2, io.EOF)

	switch {
	case eof1 && eof2:
		p.done = true
		return pr, io.EOF
	case err1 != nil && !eof1 || err2 != nil && !eof2:
		p.done = true
		return pr, errors.Join(nonEOF(err1), nonEOF(err2))
	case eof1 != eof2:
		p.done = true
		return pr, errs.ErrDiscordantPairs
	}

	pr.R1, pr.R2 = rec1, rec2
	pr.Flags = CheckNames(rec1.ID, rec2.ID)

	return pr, nil
}

func nonEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// All returns an iterator over the remaining pairs. Iteration ends at the
// shared end of both streams; a discordant end or a read error is yielded
// once and ends the iteration.
func (p *Reader[S]) All() iter.Seq2[Pair[S], error] {
	return func(yield func(Pair[S], error) bool) {
		for {
			pr, err := p.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(pr, err) {
				return
			}
		}
	}
}

// Zip is shorthand for NewReader(r1, r2).All().
//
// Example:
//
//	for p, err := range pair.Zip[[]byte](fq1, fq2) {
//	    if err != nil {
//	        return err
//	    }
//	    if !p.OK() {
//	        log.Printf("mates %s / %s: %s", p.R1.ID, p.R2.ID, p.Flags)
//	    }
//	}
func Zip[S any](r1, r2 record.Reader[S]) iter.Seq2[Pair[S], error] {
	return NewReader(r1, r2).All()
}

// Count drains both readers and returns the number of pairs and of pairs
// that failed the name check. It stops at the first error.
func Count[S any](r1, r2 record.Reader[S]) (pairs, flagged int, err error) {
	for p, err := range Zip(r1, r2) {
		if err != nil {
			return pairs, flagged, err
		}
		pairs++
		if !p.OK() {
			flagged++
		}
	}

	return pairs, flagged, nil
}
