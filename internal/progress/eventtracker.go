// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync/atomic"
	"time"
)

var _ Tracker = (*EventTracker)(nil)

// EventTracker reports every run and step as an Event.
type EventTracker struct {
	reporter Reporter
	now      func() time.Time
}

// NewEventTracker creates a tracker sending events to r.
func NewEventTracker(r Reporter) *EventTracker {
	if r == nil {
		r = NewNullReporter()
	}

	return &EventTracker{
		reporter: r,
		now:      time.Now,
	}
}

// Begin implements Tracker.
func (t *EventTracker) Begin(ctx context.Context, title string, total int) Run {
	r := &eventRun{
		tracker: t,
		path:    append(PathFromContext(ctx), title),
		total:   total,
	}
	r.report(EventStarted, 0, nil)

	return r
}

type eventRun struct {
	tracker *EventTracker
	path    []string
	total   int
	current atomic.Int64
}

func (r *eventRun) Step() {
	r.report(EventStep, int(r.current.Add(1)), nil)
}

func (r *eventRun) Finish(err error) {
	if err != nil {
		r.report(EventFailed, int(r.current.Load()), err)
		return
	}

	r.report(EventCompleted, int(r.current.Load()), nil)
}

func (r *eventRun) report(typ EventType, current int, err error) {
	r.tracker.reporter.Report(Event{
		Path:      r.path,
		Type:      typ,
		Total:     r.total,
		Current:   current,
		Timestamp: r.tracker.now(),
		Data:      EventData{Error: err},
	})
}
