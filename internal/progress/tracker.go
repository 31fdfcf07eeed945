// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"slices"
)

// Indeterminate is the total of a run whose length is unknown.
const Indeterminate = -1

// Tracker begins progress runs. It is the pluggable half of the service:
// Start and Step are the same for every tracker.
type Tracker interface {
	// Begin opens a run. ctx is the caller's context, so PathFromContext(ctx)
	// gives the titles of the enclosing runs.
	Begin(ctx context.Context, title string, total int) Run
}

// Run is an open progress run.
type Run interface {
	// Step registers one unit of progress. It must be safe for concurrent use.
	Step()
	// Finish closes the run; err is nil on success.
	Finish(err error)
}

type trackerKey struct{}

type runKey struct{}

type activeRun struct {
	run  Run
	path []string
}

// NewContext returns a copy of ctx in which runs are begun on t.
func NewContext(ctx context.Context, t Tracker) context.Context {
	if t == nil {
		t = NullTracker{}
	}

	return context.WithValue(ctx, trackerKey{}, t)
}

// FromContext returns the tracker stored in ctx, or NullTracker.
func FromContext(ctx context.Context) Tracker {
	t, ok := ctx.Value(trackerKey{}).(Tracker)
	if !ok || t == nil {
		return NullTracker{}
	}

	return t
}

// PathFromContext returns the titles of the runs enclosing ctx, outermost first.
func PathFromContext(ctx context.Context) []string {
	a, ok := ctx.Value(runKey{}).(*activeRun)
	if !ok {
		return nil
	}

	return slices.Clone(a.path)
}

// Start runs fn inside a new progress run named title expecting total steps.
// A negative total is treated as Indeterminate. The run is finished with fn's
// error, and fn's result is returned unchanged.
func Start[R any](ctx context.Context, title string, total int, fn func(context.Context) (R, error)) (res R, err error) {
	if total < 0 {
		total = Indeterminate
	}

	run := FromContext(ctx).Begin(ctx, title, total)

	defer func() {
		run.Finish(err)
	}()

	path := append(PathFromContext(ctx), title)
	runCtx := context.WithValue(ctx, runKey{}, &activeRun{run: run, path: path})

	return fn(runCtx)
}

// Do is Start for functions without a result.
func Do(ctx context.Context, title string, total int, fn func(context.Context) error) error {
	_, err := Start(ctx, title, total, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	return err
}

// Step runs fn and then registers one step on the run in ctx, whether or not
// fn failed. Outside a run it just calls fn.
func Step[R any](ctx context.Context, fn func() (R, error)) (R, error) {
	if a, ok := ctx.Value(runKey{}).(*activeRun); ok {
		defer a.run.Step()
	}

	return fn()
}

// NullTracker begins runs that do nothing.
type NullTracker struct{}

// Begin implements Tracker.
func (NullTracker) Begin(context.Context, string, int) Run {
	return nullRun{}
}

type nullRun struct{}

func (nullRun) Step() {}

func (nullRun) Finish(error) {}
