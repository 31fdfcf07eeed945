// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package enum

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

var (
	_ Enumerable[int]   = Slice[int](nil)
	_ Lener             = Slice[int](nil)
	_ Parallelizer[int] = Slice[int](nil)
	_ Enumerable[int]   = Seq[int](nil)
	_ Parallelizer[int] = Seq[int](nil)
)

// Slice adapts a slice.
type Slice[T any] []T

// All implements Enumerable.
func (s Slice[T]) All() iter.Seq[T] {
	return slices.Values(s)
}

// Len implements Lener.
func (s Slice[T]) Len() int {
	return len(s)
}

// InParallel implements Parallelizer.
func (s Slice[T]) InParallel(workers int) Enumerable[T] {
	return NewParallel[T](s, workers)
}

// Seq adapts an iterator. Its length is only known by counting, so it should be
// re-iterable.
type Seq[T any] iter.Seq[T]

// All implements Enumerable.
func (s Seq[T]) All() iter.Seq[T] {
	return iter.Seq[T](s)
}

// InParallel implements Parallelizer.
func (s Seq[T]) InParallel(workers int) Enumerable[T] {
	return NewParallel[T](s, workers)
}

// Pair is a map entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries adapts a map as a slice of pairs in key order.
func Entries[K cmp.Ordered, V any](m map[K]V) Slice[Pair[K, V]] {
	out := make(Slice[Pair[K, V]], 0, len(m))

	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, Pair[K, V]{Key: k, Value: m[k]})
	}

	return out
}
