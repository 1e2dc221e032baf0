package stream

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/biostream/record"
)

// sliceReader replays a fixed list of outcomes, then io.EOF forever.
type sliceReader struct {
	steps []step
	calls int
}

type step struct {
	id  string
	err error
}

func (s *sliceReader) Next() (record.Record[string], error) {
	s.calls++
	if len(s.steps) == 0 {
		return record.Record[string]{}, io.EOF
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.err != nil {
		return record.Record[string]{}, st.err
	}

	return record.Record[string]{ID: []byte(st.id), Seq: st.id}, nil
}

var errBad = errors.New("bad record")

func TestAll(t *testing.T) {
	r := &sliceReader{steps: []step{{id: "a"}, {err: errBad}, {id: "b"}}}

	var ids []string
	var errCount int
	for rec, err := range All[string](r) {
		if err != nil {
			require.ErrorIs(t, err, errBad)
			errCount++

			continue
		}
		ids = append(ids, string(rec.ID))
	}

	require.Equal(t, []string{"a", "b"}, ids)
	require.Equal(t, 1, errCount)
}

func TestAll_Break(t *testing.T) {
	r := &sliceReader{steps: []step{{id: "a"}, {id: "b"}, {id: "c"}}}

	for range All[string](r) {
		break
	}
	require.Equal(t, 1, r.calls)
	require.Len(t, r.steps, 2)
}

func TestAll_Empty(t *testing.T) {
	for range All[string](&sliceReader{}) {
		t.Fatal("no records expected")
	}
}

func TestPoll(t *testing.T) {
	r := &sliceReader{steps: []step{{id: "a"}, {err: errBad}}}

	res := Poll[string](r)
	require.True(t, res.Ready())
	require.False(t, res.Done())
	require.NoError(t, res.Err)
	require.Equal(t, "a", res.Record.Seq)

	res = Poll[string](r)
	require.True(t, res.Ready())
	require.False(t, res.Done())
	require.ErrorIs(t, res.Err, errBad)

	for range 2 {
		res = Poll[string](r)
		require.True(t, res.Ready())
		require.True(t, res.Done())
		require.NoError(t, res.Err)
	}
}

func TestPollContext(t *testing.T) {
	r := &sliceReader{steps: []step{{id: "a"}}}

	ctx, cancel := context.WithCancel(context.Background())
	res := PollContext[string](ctx, r)
	require.NoError(t, res.Err)
	require.Equal(t, "a", string(res.Record.ID))

	cancel()
	res = PollContext[string](ctx, r)
	require.ErrorIs(t, res.Err, context.Canceled)
	require.False(t, res.Done())
	require.Equal(t, 1, r.calls, "a cancelled poll must not touch the reader")
}

func TestCollect(t *testing.T) {
	recs, err := Collect[string](&sliceReader{steps: []step{{id: "a"}, {id: "b"}}})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	recs, err = Collect[string](&sliceReader{steps: []step{{id: "a"}, {err: errBad}, {id: "b"}}})
	require.ErrorIs(t, err, errBad)
	require.Len(t, recs, 1)
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, 64*1024, cfg.BufferSize())
	require.False(t, cfg.ContinueOnError())
	require.False(t, cfg.SharedBuffers())
	require.False(t, cfg.LenientSeparator())

	cfg, err = NewConfig(WithBufferSize(MinBufferSize), WithContinueOnError(), WithSharedBuffers(), WithLenientSeparator(), nil)
	require.NoError(t, err)
	require.Equal(t, MinBufferSize, cfg.BufferSize())
	require.True(t, cfg.ContinueOnError())
	require.True(t, cfg.SharedBuffers())
	require.True(t, cfg.LenientSeparator())

	_, err = NewConfig(WithBufferSize(MinBufferSize - 1))
	require.Error(t, err)
}
