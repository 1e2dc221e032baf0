package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/biostream/errs"
)

// constantFingerprint forces every name onto the same fingerprint.
func constantFingerprint([]byte) uint64 { return 42 }

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Equal(t, 0, tracker.Unique())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Duplicates())
}

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track([]byte("read_1")))
	require.NoError(t, tracker.Track([]byte("read_2")))
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, 2, tracker.Unique())
	require.False(t, tracker.HasCollision())
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	require.ErrorIs(t, tracker.Track(nil), errs.ErrInvalidID)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track([]byte("read_1")))
	require.NoError(t, tracker.Track([]byte("read_2")))
	require.ErrorIs(t, tracker.Track([]byte("read_1")), errs.ErrDuplicateID)
	require.ErrorIs(t, tracker.Track([]byte("read_1")), errs.ErrDuplicateID)

	require.Equal(t, 4, tracker.Count())
	require.Equal(t, 2, tracker.Unique())
	require.Equal(t, []string{"read_1"}, tracker.Duplicates())
}

func TestTracker_Track_ReusedBuffer(t *testing.T) {
	tracker := NewTracker()

	buf := []byte("read_1")
	require.NoError(t, tracker.Track(buf))
	copy(buf, "read_2")
	require.NoError(t, tracker.Track(buf), "tracked names must not alias the caller's buffer")
}

func TestTracker_Track_Collision(t *testing.T) {
	tracker := NewTracker()
	tracker.fingerprint = constantFingerprint

	require.NoError(t, tracker.Track([]byte("read_1")))
	require.NoError(t, tracker.Track([]byte("read_2")))
	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Unique())
	require.Empty(t, tracker.Duplicates())

	require.ErrorIs(t, tracker.Track([]byte("read_2")), errs.ErrDuplicateID)
	require.ErrorIs(t, tracker.Track([]byte("read_1")), errs.ErrDuplicateID)
	require.NoError(t, tracker.Track([]byte("read_3")))
	require.Equal(t, []string{"read_2", "read_1"}, tracker.Duplicates())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	tracker.fingerprint = constantFingerprint

	require.NoError(t, tracker.Track([]byte("a")))
	require.NoError(t, tracker.Track([]byte("b")))
	require.ErrorIs(t, tracker.Track([]byte("a")), errs.ErrDuplicateID)

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())
	require.Equal(t, 0, tracker.Unique())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Duplicates())

	require.NoError(t, tracker.Track([]byte("a")))
}
