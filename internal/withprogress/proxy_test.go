// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package withprogress

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"testing/iotest"

	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/enum"
	"github.com/matt-FFFFFF/withprogress/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a progress.Reporter keeping every event.
type recorder struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *recorder) Report(e progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recorder) Close() {}

func (r *recorder) ofType(typ progress.EventType) []progress.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []progress.Event

	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}

	return out
}

func (r *recorder) types() []progress.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]progress.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}

	return out
}

func tracked(t *testing.T) (context.Context, *recorder) {
	t.Helper()

	rec := &recorder{}

	return progress.NewContext(t.Context(), progress.NewEventTracker(rec)), rec
}

// counted is a source recording how often it is iterated.
type counted struct {
	items  []int
	calls  atomic.Int32
	stream bool
}

func (c *counted) All() iter.Seq[int] {
	c.calls.Add(1)
	return slices.Values(c.items)
}

func (c *counted) Streaming() bool {
	return c.stream
}

// sized adds a size query to counted.
type sized struct {
	*counted
}

func (s sized) Size() int {
	return len(s.items)
}

func TestEach_ExplicitLength(t *testing.T) {
	ctx, rec := tracked(t)
	src := enum.Slice[int]{4, 5, 6}

	var seen []int

	got, err := New[int](src, "work", WithLength(3)).Each(ctx, func(v int) error {
		seen = append(seen, v)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.Equal(t, []int{4, 5, 6}, seen)

	steps := rec.ofType(progress.EventStep)
	require.Len(t, steps, 3)

	for i, e := range steps {
		assert.Equal(t, i+1, e.Current)
		assert.Equal(t, 3, e.Total)
		assert.Equal(t, []string{"work"}, e.Path)
	}

	assert.Len(t, rec.ofType(progress.EventCompleted), 1)
}

func TestEach_SizeQueryAvoidsCount(t *testing.T) {
	ctx, rec := tracked(t)
	src := sized{&counted{items: []int{1, 2, 3, 4}}}

	_, err := New[int](src, "sized").Each(ctx, func(int) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())

	started := rec.ofType(progress.EventStarted)
	require.Len(t, started, 1)
	assert.Equal(t, 4, started[0].Total)
}

func TestEach_CountsWhenNoSize(t *testing.T) {
	ctx, rec := tracked(t)
	src := &counted{items: []int{1, 2}}

	_, err := New[int](src, "plain").Each(ctx, func(int) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, 2, rec.ofType(progress.EventStarted)[0].Total)
}

func TestEach_StreamMaterializedOnce(t *testing.T) {
	var buf bytes.Buffer

	ctx, rec := tracked(t)
	ctx = ctxlog.New(ctx, slog.New(slog.NewTextHandler(&buf, nil)))
	src := &counted{items: []int{7, 8, 9}, stream: true}

	var seen []int

	got, err := New[int](src, "stream").Each(ctx, func(v int) error {
		seen = append(seen, v)
		return nil
	})

	require.NoError(t, err)
	assert.Same(t, src, got)
	assert.Equal(t, []int{7, 8, 9}, seen)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Contains(t, buf.String(), "collecting elements for stream")
	assert.Equal(t, 3, rec.ofType(progress.EventStarted)[0].Total)
	assert.Len(t, rec.ofType(progress.EventStep), 3)
}

func TestEach_LinesReturnsOriginalSource(t *testing.T) {
	ctx, rec := tracked(t)
	src := enum.String("a\nb\nc\n")

	got, err := New[string](src, "lines").Each(ctx, func(string) error { return nil })

	require.NoError(t, err)
	assert.Same(t, src, got)
	assert.Equal(t, 3, rec.ofType(progress.EventStarted)[0].Total)
}

func TestEach_ExplicitLengthSkipsMaterialization(t *testing.T) {
	var buf bytes.Buffer

	ctx := ctxlog.New(t.Context(), slog.New(slog.NewTextHandler(&buf, nil)))
	src := &counted{items: []int{1, 2, 3}, stream: true}

	_, err := New[int](src, "stream", WithLength(3)).Each(ctx, func(int) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())
	assert.NotContains(t, buf.String(), "collecting elements")
}

func TestEach_StreamErrorPropagates(t *testing.T) {
	errRead := errors.New("read failed")
	src := enum.NewLines(iotest.ErrReader(errRead))

	_, err := New[string](src, "broken").Each(t.Context(), func(string) error { return nil })
	assert.ErrorIs(t, err, errRead)
}

func TestEach_CallbackErrorFailsRun(t *testing.T) {
	ctx, rec := tracked(t)
	errStop := errors.New("stop")

	_, err := New[int](enum.Slice[int]{1, 2, 3}, "fail").Each(ctx, func(v int) error {
		if v == 2 {
			return errStop
		}

		return nil
	})

	require.ErrorIs(t, err, errStop)

	failed := rec.ofType(progress.EventFailed)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Data.Error, errStop)
	assert.Len(t, rec.ofType(progress.EventStep), 2)
}

func TestEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New[int](enum.Slice[int]{1}, "cancelled").Each(ctx, func(int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	ctx, rec := tracked(t)
	src := enum.Slice[string]{"x", "y"}

	got, err := Run[string](ctx, src, "run", func(string) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.Equal(t, []progress.EventType{
		progress.EventStarted, progress.EventStep, progress.EventStep, progress.EventCompleted,
	}, rec.types())
}

func TestWithTitle(t *testing.T) {
	p := New[int](enum.Slice[int]{1, 2}, "first", WithLength(2))

	p2 := p.WithTitle("second")
	assert.Equal(t, "first", p.Title())
	assert.Equal(t, "second", p2.Title())

	n, ok := p2.Length()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	p3 := p.WithTitle("", WithLength(5))
	assert.Equal(t, "first", p3.Title())

	n, _ = p3.Length()
	assert.Equal(t, 5, n)

	n, _ = p.Length()
	assert.Equal(t, 2, n)

	assert.Equal(t, p.Source(), p3.Source())
}

func TestRunWithTitle(t *testing.T) {
	ctx, rec := tracked(t)

	_, err := New[int](enum.Slice[int]{1}, "old").RunWithTitle(ctx, "new", func(int) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, "new", rec.ofType(progress.EventStarted)[0].Title())
}

func TestNew_UnknownLength(t *testing.T) {
	_, ok := New[int](enum.Slice[int]{}, "x").Length()
	assert.False(t, ok)

	_, ok = New[int](enum.Slice[int]{}, "x", WithLength(-4)).Length()
	assert.False(t, ok)
}

func TestRespondsTo(t *testing.T) {
	parallel := New[int](enum.Slice[int]{1}, "x")
	plain := New[int](&counted{}, "x")

	tests := []struct {
		name string
		op   string
		p    *Proxy[int]
		want bool
	}{
		{name: "each", op: "each", p: plain, want: true},
		{name: "predicate with question mark", op: "any?", p: plain, want: true},
		{name: "mixed case", op: "Group_By", p: plain, want: true},
		{name: "own operation", op: "with_title", p: plain, want: true},
		{name: "accessor", op: "length", p: plain, want: true},
		{name: "in_parallel supported", op: "in_parallel", p: parallel, want: true},
		{name: "in_parallel unsupported", op: "in_parallel", p: plain, want: false},
		{name: "unknown", op: "upcase", p: plain, want: false},
		{name: "empty", op: "", p: plain, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.RespondsTo(tc.op))
		})
	}

	for _, op := range Operations() {
		assert.True(t, plain.RespondsTo(string(op)), op)
	}
}

func TestInParallel_Unsupported(t *testing.T) {
	_, err := New[int](&counted{}, "x").InParallel(2)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = RunInParallel(t.Context(), New[int](&counted{}, "x"), 2, func(int) error { return nil })
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestInParallel_KeepsTitleAndLength(t *testing.T) {
	p, err := New[int](enum.Slice[int]{1, 2, 3}, "par", WithLength(3)).InParallel(4)
	require.NoError(t, err)

	assert.Equal(t, "par", p.Title())

	n, ok := p.Length()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	par, ok := p.Source().(*enum.Parallel[int])
	require.True(t, ok)
	assert.Equal(t, 4, par.Workers())
}

func TestRunInParallel(t *testing.T) {
	ctx, rec := tracked(t)

	var sum atomic.Int64

	_, err := RunInParallel(ctx, New[int](enum.Slice[int]{1, 2, 3, 4}, "par"), 2, func(v int) error {
		sum.Add(int64(v))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), sum.Load())
	assert.Len(t, rec.ofType(progress.EventStep), 4)
	assert.Equal(t, 4, rec.ofType(progress.EventCompleted)[0].Current)
}
