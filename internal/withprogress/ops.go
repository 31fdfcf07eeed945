// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package withprogress

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/matt-FFFFFF/withprogress/internal/enum"
)

// Number is the constraint of Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Each calls fn for every element and returns the original source, even when a
// stream was collected to count it.
func (p *Proxy[T]) Each(ctx context.Context, fn func(T) error) (enum.Enumerable[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, OpEach)
	}

	return p.EachWithIndex(ctx, func(_ int, v T) error {
		return fn(v)
	})
}

// EachWithIndex is Each with the element index. It returns the original source.
func (p *Proxy[T]) EachWithIndex(ctx context.Context, fn func(int, T) error) (enum.Enumerable[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, OpEachWithIndex)
	}

	err := p.walk(ctx, OpEachWithIndex, func(i int, v T) (bool, error) {
		return true, fn(i, v)
	})
	if err != nil {
		return nil, err
	}

	return p.source, nil
}

// Map returns fn applied to every element, in source order.
func Map[T, U any](ctx context.Context, p *Proxy[T], fn func(T) (U, error)) ([]U, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, OpMap)
	}

	var out collector[U]

	err := p.walk(ctx, OpMap, func(i int, v T) (bool, error) {
		u, err := fn(v)
		if err != nil {
			return false, err
		}

		out.add(i, u)

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return out.values(), nil
}

// FlatMap returns the concatenation of fn applied to every element.
func FlatMap[T, U any](ctx context.Context, p *Proxy[T], fn func(T) ([]U, error)) ([]U, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, OpFlatMap)
	}

	var out collector[[]U]

	err := p.walk(ctx, OpFlatMap, func(i int, v T) (bool, error) {
		us, err := fn(v)
		if err != nil {
			return false, err
		}

		out.add(i, us)

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return slices.Concat(out.values()...), nil
}

// Filter returns the elements for which fn is true.
func (p *Proxy[T]) Filter(ctx context.Context, fn func(T) (bool, error)) ([]T, error) {
	yes, _, err := p.split(ctx, OpFilter, fn)
	return yes, err
}

// Reject returns the elements for which fn is false.
func (p *Proxy[T]) Reject(ctx context.Context, fn func(T) (bool, error)) ([]T, error) {
	_, no, err := p.split(ctx, OpReject, fn)
	return no, err
}

// Partition returns the elements for which fn is true, then the rest.
func (p *Proxy[T]) Partition(ctx context.Context, fn func(T) (bool, error)) ([]T, []T, error) {
	return p.split(ctx, OpPartition, fn)
}

func (p *Proxy[T]) split(ctx context.Context, op Operation, fn func(T) (bool, error)) ([]T, []T, error) {
	if fn == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrCallbackRequired, op)
	}

	var yes, no collector[T]

	err := p.walk(ctx, op, func(i int, v T) (bool, error) {
		ok, err := fn(v)
		if err != nil {
			return false, err
		}

		if ok {
			yes.add(i, v)
		} else {
			no.add(i, v)
		}

		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return yes.values(), no.values(), nil
}

// Find returns the first element for which fn is true. The walk stops at the
// first match.
func (p *Proxy[T]) Find(ctx context.Context, fn func(T) (bool, error)) (T, bool, error) {
	var zero T

	if fn == nil {
		return zero, false, fmt.Errorf("%w: %s", ErrCallbackRequired, OpFind)
	}

	var found collector[T]

	err := p.walk(ctx, OpFind, func(i int, v T) (bool, error) {
		ok, err := fn(v)
		if err != nil || !ok {
			return err == nil, err
		}

		found.add(i, v)

		return false, nil
	})
	if err != nil {
		return zero, false, err
	}

	return found.first()
}

// Any reports whether fn is true for some element, stopping at the first.
func (p *Proxy[T]) Any(ctx context.Context, fn func(T) (bool, error)) (bool, error) {
	return p.exists(ctx, OpAny, fn, true)
}

// All reports whether fn is true for every element, stopping at the first
// false.
func (p *Proxy[T]) All(ctx context.Context, fn func(T) (bool, error)) (bool, error) {
	found, err := p.exists(ctx, OpAll, fn, false)
	return !found && err == nil, err
}

// None reports whether fn is false for every element.
func (p *Proxy[T]) None(ctx context.Context, fn func(T) (bool, error)) (bool, error) {
	found, err := p.exists(ctx, OpNone, fn, true)
	return !found && err == nil, err
}

// exists reports whether fn returns want for some element.
func (p *Proxy[T]) exists(ctx context.Context, op Operation, fn func(T) (bool, error), want bool) (bool, error) {
	if fn == nil {
		return false, fmt.Errorf("%w: %s", ErrCallbackRequired, op)
	}

	var found atomic.Bool

	err := p.walk(ctx, op, func(_ int, v T) (bool, error) {
		ok, err := fn(v)
		if err != nil {
			return false, err
		}

		if ok == want {
			found.Store(true)
			return false, nil
		}

		return true, nil
	})
	if err != nil {
		return false, err
	}

	return found.Load(), nil
}

// CountFunc returns the number of elements for which fn is true.
func (p *Proxy[T]) CountFunc(ctx context.Context, fn func(T) (bool, error)) (int, error) {
	if fn == nil {
		return 0, fmt.Errorf("%w: %s", ErrCallbackRequired, OpCount)
	}

	var n atomic.Int64

	err := p.walk(ctx, OpCount, func(_ int, v T) (bool, error) {
		ok, err := fn(v)
		if ok && err == nil {
			n.Add(1)
		}

		return err == nil, err
	})
	if err != nil {
		return 0, err
	}

	return int(n.Load()), nil
}

// GroupBy groups the elements by the key fn returns. Each group keeps source
// order.
func GroupBy[T any, K comparable](ctx context.Context, p *Proxy[T], fn func(T) (K, error)) (map[K][]T, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, OpGroupBy)
	}

	var keyed collector[enum.Pair[K, T]]

	err := p.walk(ctx, OpGroupBy, func(i int, v T) (bool, error) {
		k, err := fn(v)
		if err != nil {
			return false, err
		}

		keyed.add(i, enum.Pair[K, T]{Key: k, Value: v})

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[K][]T)
	for _, kv := range keyed.values() {
		out[kv.Key] = append(out[kv.Key], kv.Value)
	}

	return out, nil
}

// Reduce folds the elements into init with fn. On a parallel source the
// elements are folded in the order their callbacks run.
func Reduce[T, A any](ctx context.Context, p *Proxy[T], init A, fn func(A, T) (A, error)) (A, error) {
	if fn == nil {
		return init, fmt.Errorf("%w: %s", ErrCallbackRequired, OpReduce)
	}

	var mu sync.Mutex

	acc := init

	err := p.walk(ctx, OpReduce, func(_ int, v T) (bool, error) {
		mu.Lock()
		defer mu.Unlock()

		next, err := fn(acc, v)
		if err != nil {
			return false, err
		}

		acc = next

		return true, nil
	})
	if err != nil {
		return init, err
	}

	return acc, nil
}

// Count returns the number of elements.
func (p *Proxy[T]) Count(ctx context.Context) (int, error) {
	return aggregate(ctx, p, OpCount, func(src enum.Enumerable[T]) (int, error) {
		if n, ok := enum.Length(src); ok {
			return n, nil
		}

		return enum.Count(src)
	})
}

// ToSlice returns the elements in source order.
func (p *Proxy[T]) ToSlice(ctx context.Context) ([]T, error) {
	return aggregate(ctx, p, OpToA, enum.Collect[T])
}

// Sum returns the sum of the elements.
func Sum[T Number](ctx context.Context, p *Proxy[T]) (T, error) {
	return aggregate(ctx, p, OpSum, func(src enum.Enumerable[T]) (T, error) {
		var total T
		for v := range src.All() {
			total += v
		}

		return total, nil
	})
}

// Min returns the smallest element, or false when there are none.
func Min[T cmp.Ordered](ctx context.Context, p *Proxy[T]) (T, bool, error) {
	return extreme(ctx, p, OpMin, func(a, b T) bool { return cmp.Less(a, b) })
}

// Max returns the largest element, or false when there are none.
func Max[T cmp.Ordered](ctx context.Context, p *Proxy[T]) (T, bool, error) {
	return extreme(ctx, p, OpMax, func(a, b T) bool { return cmp.Less(b, a) })
}

func extreme[T any](ctx context.Context, p *Proxy[T], op Operation, better func(a, b T) bool) (T, bool, error) {
	type result struct {
		v  T
		ok bool
	}

	res, err := aggregate(ctx, p, op, func(src enum.Enumerable[T]) (result, error) {
		var r result

		for v := range src.All() {
			if !r.ok || better(v, r.v) {
				r = result{v: v, ok: true}
			}
		}

		return r, nil
	})

	return res.v, res.ok, err
}

// Invoke runs the named operation with fn as its callback, for callers that
// pick operations at run time. Predicate operations need fn to return a bool.
// count and to_a accept a nil fn.
func (p *Proxy[T]) Invoke(ctx context.Context, name string, fn func(T) (any, error)) (any, error) {
	op := ParseOperation(name)

	switch op {
	case OpToA, OpEntries:
		return p.ToSlice(ctx)
	case OpCount:
		if fn == nil {
			return p.Count(ctx)
		}
	case OpEach, OpMap, OpSelect, OpFilter, OpReject, OpFind, OpDetect, OpAny, OpAll, OpNone, OpPartition:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, name)
	}

	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrCallbackRequired, op)
	}

	pred := func(v T) (bool, error) {
		r, err := fn(v)
		if err != nil {
			return false, err
		}

		b, ok := r.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %s got %T", ErrNotBool, op, r)
		}

		return b, nil
	}

	switch op {
	case OpEach:
		return p.Each(ctx, func(v T) error {
			_, err := fn(v)
			return err
		})
	case OpMap:
		return Map(ctx, p, fn)
	case OpSelect, OpFilter:
		return p.Filter(ctx, pred)
	case OpReject:
		return p.Reject(ctx, pred)
	case OpFind, OpDetect:
		v, ok, err := p.Find(ctx, pred)
		if err != nil || !ok {
			return nil, err
		}

		return v, nil
	case OpAny:
		return p.Any(ctx, pred)
	case OpAll:
		return p.All(ctx, pred)
	case OpNone:
		return p.None(ctx, pred)
	case OpCount:
		return p.CountFunc(ctx, pred)
	default:
		yes, no, err := p.Partition(ctx, pred)
		if err != nil {
			return nil, err
		}

		return [2][]T{yes, no}, nil
	}
}

// collector gathers per-element results that may arrive out of order and
// returns them by element index.
type collector[V any] struct {
	mu    sync.Mutex
	items []indexed[V]
}

type indexed[V any] struct {
	i int
	v V
}

func (c *collector[V]) add(i int, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, indexed[V]{i: i, v: v})
}

func (c *collector[V]) sorted() []indexed[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	slices.SortStableFunc(c.items, func(a, b indexed[V]) int {
		return cmp.Compare(a.i, b.i)
	})

	return c.items
}

func (c *collector[V]) values() []V {
	items := c.sorted()
	out := make([]V, len(items))

	for i, it := range items {
		out[i] = it.v
	}

	return out
}

func (c *collector[V]) first() (V, bool, error) {
	items := c.sorted()
	if len(items) == 0 {
		var zero V
		return zero, false, nil
	}

	return items[0].v, true, nil
}
