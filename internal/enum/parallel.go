// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package enum

import (
	"context"
	"iter"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when InParallel is given zero or less.
const DefaultWorkers = 10

var (
	_ Enumerable[int]   = (*Parallel[int])(nil)
	_ Walker[int]       = (*Parallel[int])(nil)
	_ Measurer          = (*Parallel[int])(nil)
	_ Streamer          = (*Parallel[int])(nil)
	_ Failer            = (*Parallel[int])(nil)
	_ Materializer[int] = (*Parallel[int])(nil)
	_ Parallelizer[int] = (*Parallel[int])(nil)
)

// Parallel is the parallel-executing variant of a source. Plain iteration is
// unchanged; Walk runs the callback on a bounded pool of goroutines.
type Parallel[T any] struct {
	src     Enumerable[T]
	workers int
}

// NewParallel wraps src so that Walk uses up to workers goroutines.
func NewParallel[T any](src Enumerable[T], workers int) *Parallel[T] {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	return &Parallel[T]{src: src, workers: workers}
}

// Workers returns the size of the pool.
func (p *Parallel[T]) Workers() int {
	return p.workers
}

// Unwrap returns the wrapped source.
func (p *Parallel[T]) Unwrap() Enumerable[T] {
	return p.src
}

// All implements Enumerable.
func (p *Parallel[T]) All() iter.Seq[T] {
	return p.src.All()
}

// Measure implements Measurer. The length is known only when the wrapped
// source knows it.
func (p *Parallel[T]) Measure() (int, bool) {
	return Length(p.src)
}

// Streaming implements Streamer for wrapped streams.
func (p *Parallel[T]) Streaming() bool {
	return IsStream(p.src)
}

// Err implements Failer.
func (p *Parallel[T]) Err() error {
	return Err(p.src)
}

// Materialize drains the wrapped source into a slice and returns a parallel
// variant of that slice with the same pool size.
func (p *Parallel[T]) Materialize() (Enumerable[T], error) {
	items, err := Collect(p.src)
	if err != nil {
		return nil, err
	}

	return NewParallel[T](Slice[T](items), p.workers), nil
}

// InParallel implements Parallelizer by changing the pool size.
func (p *Parallel[T]) InParallel(workers int) Enumerable[T] {
	return NewParallel(p.src, workers)
}

// Walk implements Walker. Elements are read from the source in order and
// handed to fn on the pool. The first error cancels the walk and is returned;
// fn returning false stops new elements from being scheduled.
func (p *Parallel[T]) Walk(ctx context.Context, fn func(int, T) (bool, error)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var stop atomic.Bool

	i := 0

	for v := range p.src.All() {
		if stop.Load() || gctx.Err() != nil {
			break
		}

		idx := i
		i++

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			cont, err := fn(idx, v)
			if !cont {
				stop.Store(true)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return Err(p.src)
}
