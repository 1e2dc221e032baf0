// Package stream provides the iteration views shared by all biostream
// readers: a lazy range-over-func sequence and a single-step poll.
//
// Parsing is synchronous, so a poll always resolves immediately with the
// outcome Next would have produced. The poll form exists for callers built
// around cooperative scheduling loops, not because a step can suspend.
package stream

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/arloliu/biostream/record"
)

// All returns a single-use iterator over the records of r.
//
// Iteration ends at io.EOF. Parse errors are yielded with a zero record; the
// loop continues afterwards only if the reader was configured to continue on
// error (otherwise the reader reports io.EOF and the iterator ends). Breaking
// out of the loop leaves r positioned after the last yielded record.
//
// Example:
//
//	for rec, err := range stream.All(r) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s\n", rec.ID)
//	}
func All[S any](r record.Reader[S]) iter.Seq2[record.Record[S], error] {
	return func(yield func(record.Record[S], error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// Result is the outcome of one poll.
type Result[S any] struct {
	Record record.Record[S]
	Err    error
	done   bool
}

// Ready reports whether the poll resolved. Polling never suspends, so it is
// always true; it is kept for symmetry with cooperative schedulers.
func (r Result[S]) Ready() bool {
	return true
}

// Done reports whether the stream has ended cleanly.
func (r Result[S]) Done() bool {
	return r.done
}

// Poll performs one step of r and returns its outcome immediately.
func Poll[S any](r record.Reader[S]) Result[S] {
	rec, err := r.Next()
	if errors.Is(err, io.EOF) {
		return Result[S]{done: true}
	}

	return Result[S]{Record: rec, Err: err}
}

// PollContext is Poll guarded by ctx: when ctx is already done it returns
// ctx.Err() without reading from r.
func PollContext[S any](ctx context.Context, r record.Reader[S]) Result[S] {
	if err := ctx.Err(); err != nil {
		return Result[S]{Err: err}
	}

	return Poll(r)
}

// Collect reads all remaining records of r. It stops at the first error and
// returns the records read so far along with it.
func Collect[S any](r record.Reader[S]) ([]record.Record[S], error) {
	var out []record.Record[S]
	for rec, err := range All(r) {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}

	return out, nil
}
