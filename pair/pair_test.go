package pair

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/fastq"
	"github.com/arloliu/biostream/record"
)

func newFastq(t *testing.T, data string) *fastq.Reader[[]byte] {
	t.Helper()

	r, err := fastq.NewReader(strings.NewReader(data), record.Raw{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return r
}

func fq(ids ...string) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString("@" + id + "\nACGT\n+\nIIII\n")
	}

	return b.String()
}

func TestCheckNames(t *testing.T) {
	tests := []struct {
		name     string
		id1, id2 string
		want     Flag
	}{
		{"matching mates", "SRR001/1", "SRR001/2", 0},
		{"bare digits", "read1", "read2", 0},
		{"swapped suffix", "SRR001/2", "SRR001/1", SuffixMismatch},
		{"same suffix", "SRR001/1", "SRR001/1", SuffixMismatch},
		{"different prefix", "SRR001/1", "SRR002/2", PrefixMismatch},
		{"both", "SRR001/1", "SRR002/1", SuffixMismatch | PrefixMismatch},
		{"different length", "ab1", "abc2", PrefixMismatch},
		{"empty", "", "x2", SuffixMismatch | PrefixMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CheckNames([]byte(tt.id1), []byte(tt.id2)))
		})
	}
}

func TestFlag_String(t *testing.T) {
	require.Equal(t, "OK", Flag(0).String())
	require.Equal(t, "SuffixMismatch", SuffixMismatch.String())
	require.Equal(t, "SuffixMismatch|PrefixMismatch", (SuffixMismatch | PrefixMismatch).String())
	require.True(t, (SuffixMismatch | PrefixMismatch).Has(PrefixMismatch))
	require.False(t, SuffixMismatch.Has(PrefixMismatch))
}

func TestZip_MatchingStreams(t *testing.T) {
	r1 := newFastq(t, fq("a/1", "b/1", "c/1"))
	r2 := newFastq(t, fq("a/2", "b/2", "c/2"))

	var n int
	for p, err := range Zip[[]byte](r1, r2) {
		require.NoError(t, err)
		require.True(t, p.OK())
		require.Len(t, p.R1.Quality, 4)
		require.Len(t, p.R2.Quality, 4)
		n++
	}
	require.Equal(t, 3, n)
}

func TestZip_FlagsDoNotAbort(t *testing.T) {
	r1 := newFastq(t, fq("a/1", "b/1", "x/1", "d/2"))
	r2 := newFastq(t, fq("a/2", "b/2", "y/2", "d/2"))

	var flags []Flag
	for p, err := range Zip[[]byte](r1, r2) {
		require.NoError(t, err)
		flags = append(flags, p.Flags)
	}
	require.Equal(t, []Flag{0, 0, PrefixMismatch, SuffixMismatch}, flags)
}

func TestReader_Discordant(t *testing.T) {
	p := NewReader[[]byte](newFastq(t, fq("a/1", "b/1")), newFastq(t, fq("a/2")))

	pr, err := p.Next()
	require.NoError(t, err)
	require.Equal(t, "a/1", string(pr.R1.ID))

	_, err = p.Next()
	require.ErrorIs(t, err, errs.ErrDiscordantPairs)

	_, err = p.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_ParseError(t *testing.T) {
	r1 := newFastq(t, fq("a/1")+"@b/1\nACGT\n+\nII\n")
	r2 := newFastq(t, fq("a/2", "b/2"))

	var errCount int
	for _, err := range Zip[[]byte](r1, r2) {
		if err != nil {
			require.ErrorIs(t, err, errs.ErrInvalidQuality)
			errCount++
		}
	}
	require.Equal(t, 1, errCount)
}

func TestReader_BothEmpty(t *testing.T) {
	p := NewReader[[]byte](newFastq(t, ""), newFastq(t, ""))
	_, err := p.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestCount(t *testing.T) {
	pairs, flagged, err := Count[[]byte](newFastq(t, fq("a/1", "b/1", "c/1")), newFastq(t, fq("a/2", "B/2", "c/2")))
	require.NoError(t, err)
	require.Equal(t, 3, pairs)
	require.Equal(t, 1, flagged)

	_, _, err = Count[[]byte](newFastq(t, fq("a/1")), newFastq(t, fq("a/2", "b/2")))
	require.ErrorIs(t, err, errs.ErrDiscordantPairs)
}
