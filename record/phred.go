package record

import "math"

// Phred+33 encoding bounds.
const (
	PhredOffset  = 33
	MinPhredByte = '!'
	MaxPhredByte = '~'
	MaxPhred     = MaxPhredByte - PhredOffset
)

// Phred is a single Phred+33 encoded quality score, stored as its wire byte.
type Phred byte

// PhredFromScore returns the Phred value for score q, clamped to the
// printable range 0..93.
func PhredFromScore(q int) Phred {
	if q < 0 {
		q = 0
	}
	if q > MaxPhred {
		q = MaxPhred
	}

	return Phred(q + PhredOffset)
}

// PhredFromProbability converts an error probability into the nearest Phred
// value: round(-10*log10(p)) + 33. Probabilities at or above 1 map to score 0,
// probabilities at or below 0 map to the maximum score.
func PhredFromProbability(p float64) Phred {
	if p >= 1 || math.IsNaN(p) {
		return PhredFromScore(0)
	}
	if p <= 0 {
		return PhredFromScore(MaxPhred)
	}

	return PhredFromScore(int(math.Round(-10 * math.Log10(p))))
}

// Byte returns the wire byte.
func (q Phred) Byte() byte {
	return byte(q)
}

// Score returns the decoded quality score (byte - 33).
func (q Phred) Score() int {
	return int(q) - PhredOffset
}

// Probability returns the error probability 10^(-score/10).
func (q Phred) Probability() float64 {
	return math.Pow(10, -float64(q.Score())/10)
}

// Valid reports whether q lies in the printable Phred+33 range.
func (q Phred) Valid() bool {
	return q >= MinPhredByte && q <= MaxPhredByte
}

// PhredsFromBytes maps each quality byte to a Phred value. The result is
// never nil.
func PhredsFromBytes(b []byte) []Phred {
	out := make([]Phred, len(b))
	for i, c := range b {
		out[i] = Phred(c)
	}

	return out
}

// MeanScore returns the arithmetic mean score of qs, or 0 for an empty slice.
func MeanScore(qs []Phred) float64 {
	if len(qs) == 0 {
		return 0
	}
	var sum int
	for _, q := range qs {
		sum += q.Score()
	}

	return float64(sum) / float64(len(qs))
}
