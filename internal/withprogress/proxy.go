// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package withprogress

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/enum"
	"github.com/matt-FFFFFF/withprogress/internal/progress"
)

// UnknownLength marks a proxy whose step count is resolved on each call.
const UnknownLength = progress.Indeterminate

// Proxy wraps a source with a progress title and an optional length.
// It is immutable and never copies the source.
type Proxy[T any] struct {
	source enum.Enumerable[T]
	title  string
	length int
}

type options struct {
	length int
}

// Option configures a Proxy.
type Option func(*options)

// WithLength sets the expected number of steps. A negative n means unknown.
func WithLength(n int) Option {
	return func(o *options) {
		o.length = max(n, UnknownLength)
	}
}

// New wraps source.
func New[T any](source enum.Enumerable[T], title string, opts ...Option) *Proxy[T] {
	o := options{length: UnknownLength}
	for _, opt := range opts {
		opt(&o)
	}

	return &Proxy[T]{
		source: source,
		title:  title,
		length: o.length,
	}
}

// Run wraps source and immediately calls Each with fn, returning its result.
func Run[T any](
	ctx context.Context,
	source enum.Enumerable[T],
	title string,
	fn func(T) error,
	opts ...Option,
) (enum.Enumerable[T], error) {
	return New(source, title, opts...).Each(ctx, fn)
}

// Source returns the wrapped source.
func (p *Proxy[T]) Source() enum.Enumerable[T] {
	return p.source
}

// Title returns the progress title.
func (p *Proxy[T]) Title() string {
	return p.title
}

// Length returns the explicit length, if one was given.
func (p *Proxy[T]) Length() (int, bool) {
	return p.length, p.length != UnknownLength
}

// WithTitle returns a new proxy over the same source. An empty title keeps the
// current one; the current length is kept unless WithLength is passed.
func (p *Proxy[T]) WithTitle(title string, opts ...Option) *Proxy[T] {
	if title == "" {
		title = p.title
	}

	o := options{length: p.length}
	for _, opt := range opts {
		opt(&o)
	}

	return &Proxy[T]{
		source: p.source,
		title:  title,
		length: o.length,
	}
}

// RunWithTitle is WithTitle followed by Each.
func (p *Proxy[T]) RunWithTitle(
	ctx context.Context,
	title string,
	fn func(T) error,
	opts ...Option,
) (enum.Enumerable[T], error) {
	return p.WithTitle(title, opts...).Each(ctx, fn)
}

// RespondsTo reports whether the proxy supports the named operation without
// calling it. in_parallel depends on the source.
func (p *Proxy[T]) RespondsTo(name string) bool {
	op := ParseOperation(name)

	switch op {
	case OpWithTitle, OpTitle, OpLength, OpSource:
		return true
	case OpInParallel:
		_, ok := p.source.(enum.Parallelizer[T])
		return ok
	}

	return op.IsIteration()
}

// InParallel returns a proxy over the parallel variant of the source, with the
// same title and length. Sources without one fail with ErrUnsupportedOperation.
func (p *Proxy[T]) InParallel(workers int) (*Proxy[T], error) {
	par, ok := p.source.(enum.Parallelizer[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s on %T", ErrUnsupportedOperation, OpInParallel, p.source)
	}

	return &Proxy[T]{
		source: par.InParallel(workers),
		title:  p.title,
		length: p.length,
	}, nil
}

// RunInParallel is InParallel followed by Each. The result is the parallel
// variant of the source.
func RunInParallel[T any](ctx context.Context, p *Proxy[T], workers int, fn func(T) error) (enum.Enumerable[T], error) {
	pp, err := p.InParallel(workers)
	if err != nil {
		return nil, err
	}

	return pp.Each(ctx, fn)
}

// resolveSource returns the source to iterate. Streams are drained into memory
// unless an explicit length makes counting unnecessary.
func (p *Proxy[T]) resolveSource(ctx context.Context) (enum.Enumerable[T], error) {
	if p.length != UnknownLength || !enum.IsStream(p.source) {
		return p.source, nil
	}

	ctxlog.Warn(ctx, "collecting elements for stream",
		"source", fmt.Sprintf("%T", p.source),
		"title", p.title,
	)

	if m, ok := p.source.(enum.Materializer[T]); ok {
		return m.Materialize()
	}

	items, err := enum.Collect(p.source)
	if err != nil {
		return nil, err
	}

	return enum.Slice[T](items), nil
}

// resolve returns the source to iterate and the number of steps to expect.
func (p *Proxy[T]) resolve(ctx context.Context) (enum.Enumerable[T], int, error) {
	if p.length != UnknownLength {
		return p.source, p.length, nil
	}

	src, err := p.resolveSource(ctx)
	if err != nil {
		return nil, 0, err
	}

	if n, ok := enum.Length(src); ok {
		return src, n, nil
	}

	n, err := enum.Count(src)
	if err != nil {
		return nil, 0, err
	}

	return src, n, nil
}

// walk opens a progress run and calls fn once per element, inside a step.
// fn returns false to stop early. When the resolved source is an enum.Walker
// fn may run concurrently.
func (p *Proxy[T]) walk(ctx context.Context, op Operation, fn func(int, T) (bool, error)) error {
	src, length, err := p.resolve(ctx)
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "walking source", "title", p.title, "operation", op, "length", length)

	return progress.Do(ctx, p.title, length, func(ctx context.Context) error {
		step := func(i int, v T) (bool, error) {
			return progress.Step(ctx, func() (bool, error) {
				return fn(i, v)
			})
		}

		if w, ok := src.(enum.Walker[T]); ok {
			return w.Walk(ctx, step)
		}

		i := 0

		for v := range src.All() {
			if err := ctx.Err(); err != nil {
				return err
			}

			cont, err := step(i, v)
			if err != nil {
				return err
			}

			if !cont {
				break
			}

			i++
		}

		return enum.Err(src)
	})
}

// aggregate runs fn over the whole source as the single step of an
// indeterminate run.
func aggregate[T, R any](ctx context.Context, p *Proxy[T], op Operation, fn func(enum.Enumerable[T]) (R, error)) (R, error) {
	src, err := p.resolveSource(ctx)
	if err != nil {
		var zero R
		return zero, err
	}

	ctxlog.Debug(ctx, "aggregating source", "title", p.title, "operation", op)

	return progress.Start(ctx, p.title, progress.Indeterminate, func(ctx context.Context) (R, error) {
		return progress.Step(ctx, func() (R, error) {
			res, err := fn(src)
			if err != nil {
				return res, err
			}

			return res, enum.Err(src)
		})
	})
}
