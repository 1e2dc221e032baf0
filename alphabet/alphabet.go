// Package alphabet provides validated biological sequence types.
//
// An Alphabet is a case-insensitive set of symbols. Sequences parsed against
// an alphabet are stored upper-cased and can be packed into k-mers of
// Bits() bits per symbol.
//
// The Codec function adapts an alphabet to the record.Codec interface so it
// can be handed directly to the FASTA and FASTQ readers:
//
//	r, err := fastq.NewReader(f, alphabet.Codec(alphabet.DNA))
//	for rec, err := range r.All() {
//	    // rec.Seq is an alphabet.Seq holding only A, C, G and T
//	}
package alphabet

import (
	"fmt"
	"math/bits"
)

// Alphabet is an ordered set of sequence symbols.
type Alphabet struct {
	name       string
	letters    string
	index      [256]int8 // symbol code by byte, -1 for foreign bytes
	complement [256]byte // 0 when the alphabet has no complement
	bits       int
}

// Predefined alphabets.
var (
	// DNA holds the four nucleotides.
	DNA = mustNew("DNA", "ACGT", "TGCA")
	// DNAN is DNA plus the ambiguity code N.
	DNAN = mustNew("DNAN", "ACGTN", "TGCAN")
	// RNA holds the four ribonucleotides.
	RNA = mustNew("RNA", "ACGU", "UGCA")
	// Amino holds the twenty standard amino acids and the stop symbol '*'.
	Amino = mustNew("Amino", "ACDEFGHIKLMNPQRSTVWY*", "")
)

// New creates an alphabet from its upper-case letters. complement, if not
// empty, lists the complement of each letter in the same order.
func New(name, letters, complement string) (*Alphabet, error) {
	if len(letters) == 0 || len(letters) > 127 {
		return nil, fmt.Errorf("alphabet %s: invalid size %d", name, len(letters))
	}
	if complement != "" && len(complement) != len(letters) {
		return nil, fmt.Errorf("alphabet %s: complement has %d letters, want %d", name, len(complement), len(letters))
	}

	a := &Alphabet{name: name, letters: letters}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if (c < 'A' || c > 'Z') && c != '*' {
			return nil, fmt.Errorf("alphabet %s: invalid letter %q", name, c)
		}
		if a.index[c] >= 0 {
			return nil, fmt.Errorf("alphabet %s: duplicate letter %q", name, c)
		}
		a.index[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			a.index[c|0x20] = int8(i)
		}
	}
	for i := 0; i < len(complement); i++ {
		a.complement[letters[i]] = complement[i]
	}
	a.bits = max(1, bits.Len(uint(len(letters)-1)))

	return a, nil
}

func mustNew(name, letters, complement string) *Alphabet {
	a, err := New(name, letters, complement)
	if err != nil {
		panic(err)
	}

	return a
}

// Name returns the alphabet name.
func (a *Alphabet) Name() string {
	return a.name
}

func (a *Alphabet) String() string {
	return a.name
}

// Letters returns the symbols in code order.
func (a *Alphabet) Letters() string {
	return a.letters
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.letters)
}

// Bits returns the number of bits needed to encode one symbol.
func (a *Alphabet) Bits() int {
	return a.bits
}

// Contains reports whether b, in either case, is a symbol of the alphabet.
func (a *Alphabet) Contains(b byte) bool {
	return a.index[b] >= 0
}

// Code returns the code of symbol b, or -1 if b is not in the alphabet.
func (a *Alphabet) Code(b byte) int {
	return int(a.index[b])
}

// Letter returns the symbol with the given code.
func (a *Alphabet) Letter(code int) byte {
	return a.letters[code]
}

// HasComplement reports whether the alphabet defines complements.
func (a *Alphabet) HasComplement() bool {
	return a.complement[a.letters[0]] != 0
}

// SymbolError reports a byte that does not belong to an alphabet.
type SymbolError struct {
	Alphabet string
	Symbol   byte
	Pos      int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q at position %d is not in the %s alphabet", e.Symbol, e.Pos, e.Alphabet)
}
