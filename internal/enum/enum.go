// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package enum

import (
	"context"
	"iter"
)

// Enumerable is anything whose elements can be iterated.
type Enumerable[T any] interface {
	All() iter.Seq[T]
}

// Sizer is implemented by sources that know their size.
type Sizer interface {
	Size() int
}

// Lener is implemented by sources that know their length.
type Lener interface {
	Len() int
}

// Measurer is implemented by wrappers that may or may not know the length of
// what they wrap. Measure never iterates.
type Measurer interface {
	Measure() (int, bool)
}

// Streamer is implemented by sources whose elements can only be counted by
// consuming them, such as readers.
type Streamer interface {
	Streaming() bool
}

// Failer is implemented by sources whose iteration can fail. Err reports the
// error of the last iteration, if any.
type Failer interface {
	Err() error
}

// Walker is implemented by sources that drive a per-element callback
// themselves. fn receives the element index; returning false stops the walk.
// fn may be called concurrently.
type Walker[T any] interface {
	Walk(ctx context.Context, fn func(int, T) (bool, error)) error
}

// Parallelizer is implemented by sources that can produce a variant of
// themselves whose Walk spreads elements over workers goroutines.
type Parallelizer[T any] interface {
	InParallel(workers int) Enumerable[T]
}

// Materializer is implemented by streaming sources that know how to drain
// themselves into a re-iterable source of the same kind.
type Materializer[T any] interface {
	Materialize() (Enumerable[T], error)
}

// IsStream reports whether src declares itself a stream.
func IsStream(src any) bool {
	s, ok := src.(Streamer)
	return ok && s.Streaming()
}

// Err returns the iteration error of src, if it has one.
func Err(src any) error {
	if f, ok := src.(Failer); ok {
		return f.Err()
	}

	return nil
}

// Collect drains src into a slice.
func Collect[T any](src Enumerable[T]) ([]T, error) {
	var out []T

	if l, ok := Length(src); ok {
		out = make([]T, 0, l)
	}

	for v := range src.All() {
		out = append(out, v)
	}

	return out, Err(src)
}

// Count counts the elements of src by iterating it.
func Count[T any](src Enumerable[T]) (int, error) {
	n := 0

	for range src.All() {
		n++
	}

	return n, Err(src)
}

// Length returns the element count of src from Size, Len or Measure, without
// iterating.
func Length(src any) (int, bool) {
	if m, ok := src.(Measurer); ok {
		return m.Measure()
	}

	if s, ok := src.(Sizer); ok {
		return s.Size(), true
	}

	if l, ok := src.(Lener); ok {
		return l.Len(), true
	}

	return 0, false
}
