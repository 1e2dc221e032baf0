package errs

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseError_Is(t *testing.T) {
	err := error(NewParseError(ErrInvalidQuality, "FASTQ", 4, nil))

	require.ErrorIs(t, err, ErrInvalidQuality)
	require.NotErrorIs(t, err, ErrInvalidID)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 4, pe.Line)
}

func TestParseError_WrapsCause(t *testing.T) {
	err := error(NewParseError(ErrIO, "FASTA", 0, nil).Wrap(io.ErrUnexpectedEOF))

	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, "FASTA: read error: unexpected EOF", err.Error())
}

func TestParseError_Message(t *testing.T) {
	err := NewParseError(ErrInvalidID, "FASTQ", 1, []byte("SEQ_ID_1"))
	require.Equal(t, `FASTQ: invalid id at line 1: "SEQ_ID_1"`, err.Error())

	long := strings.Repeat("A", 200)
	err = NewParseError(ErrInvalidSequence, "FASTA", 2, []byte(long))
	require.Contains(t, err.Error(), strings.Repeat("A", maxTextLen)+"...")
	require.Len(t, err.Text, 200)
}
