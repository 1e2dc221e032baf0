package alphabet

import (
	"fmt"
	"iter"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/record"
)

// Seq is a sequence whose symbols all belong to one alphabet. Symbols are
// stored upper-cased.
type Seq struct {
	alpha *Alphabet
	data  []byte
}

// Parse validates src against a and returns an owned, upper-cased copy.
// The first foreign byte is reported as a *SymbolError.
func Parse(a *Alphabet, src []byte) (Seq, error) {
	data := make([]byte, len(src))
	for i, c := range src {
		code := a.index[c]
		if code < 0 {
			return Seq{}, &SymbolError{Alphabet: a.name, Symbol: c, Pos: i}
		}
		data[i] = a.letters[code]
	}

	return Seq{alpha: a, data: data}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(a *Alphabet, src string) Seq {
	s, err := Parse(a, []byte(src))
	if err != nil {
		panic(err)
	}

	return s
}

// Alphabet returns the alphabet of s.
func (s Seq) Alphabet() *Alphabet {
	return s.alpha
}

// Bytes returns the upper-cased symbols. The slice must not be modified.
func (s Seq) Bytes() []byte {
	return s.data
}

// Len returns the number of symbols.
func (s Seq) Len() int {
	return len(s.data)
}

func (s Seq) String() string {
	return string(s.data)
}

// ReverseComplement returns the reverse complement of s. It fails for
// alphabets without complements, such as Amino.
func (s Seq) ReverseComplement() (Seq, error) {
	if s.alpha == nil || !s.alpha.HasComplement() {
		return Seq{}, fmt.Errorf("alphabet %s has no complement", s.alpha)
	}

	out := make([]byte, len(s.data))
	for i, c := range s.data {
		out[len(out)-1-i] = s.alpha.complement[c]
	}

	return Seq{alpha: s.alpha, data: out}, nil
}

// Kmer is a k-mer packed at Alphabet.Bits() bits per symbol, the first
// symbol in the most significant position.
type Kmer uint64

// MaxK returns the largest k-mer size that fits a Kmer for a.
func MaxK(a *Alphabet) int {
	return 64 / a.bits
}

// Kmers returns an iterator over the k-mers of s, yielding each k-mer's
// start position and packed value. Sequences shorter than k yield nothing.
//
// Returns errs.ErrInvalidKmerSize when k is below 1 or above MaxK.
func (s Seq) Kmers(k int) (iter.Seq2[int, Kmer], error) {
	if s.alpha == nil {
		return func(func(int, Kmer) bool) {}, nil
	}
	if k < 1 || k > MaxK(s.alpha) {
		return nil, fmt.Errorf("%w: %d (want 1..%d for %s)", errs.ErrInvalidKmerSize, k, MaxK(s.alpha), s.alpha)
	}

	width := uint(s.alpha.bits)
	mask := ^Kmer(0)
	if total := uint(k) * width; total < 64 {
		mask = Kmer(1)<<total - 1
	}

	return func(yield func(int, Kmer) bool) {
		var v Kmer
		for i, c := range s.data {
			v = (v<<width | Kmer(s.alpha.index[c])) & mask
			if i >= k-1 && !yield(i-k+1, v) {
				return
			}
		}
	}, nil
}

// DecodeKmer unpacks a k-mer of length k produced by Seq.Kmers.
func DecodeKmer(a *Alphabet, v Kmer, k int) string {
	width := uint(a.bits)
	symMask := Kmer(1)<<width - 1

	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = a.letters[v&symMask]
		v >>= width
	}

	return string(out)
}

type codec struct {
	alpha *Alphabet
}

// Codec returns a record.Codec that parses sequences against a. Readers
// using it report foreign symbols as errs.ErrInvalidSequence.
func Codec(a *Alphabet) record.Codec[Seq] {
	return codec{alpha: a}
}

func (c codec) Decode(src []byte) (Seq, error) {
	return Parse(c.alpha, src)
}

func (c codec) Encode(dst []byte, seq Seq) []byte {
	return append(dst, seq.data...)
}
