// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
)

var (
	_ Reporter = (*ChannelReporter)(nil)
	_ Listener = (*LogListener)(nil)
)

// ChannelReporter implements Reporter using a buffered channel.
//
// Report blocks while the buffer is full so completion events are never lost;
// it gives up only when the reporter's context is cancelled. Without a
// listener, Close drops reports still waiting for buffer space.
type ChannelReporter struct {
	ch        chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closed    bool
	listening atomic.Bool
	wg        sync.WaitGroup
	once      sync.Once
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer size.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report. Events sent after Close are dropped.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	}
}

// Close implements Reporter.Close. It closes the channel, waits for the
// listener to drain it and then cancels the reporter's context.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		// Nothing drains the channel, so a blocked Report would hold the
		// read lock forever.
		if !cr.listening.Load() {
			cr.cancel()
		}

		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
		cr.cancel()
	})
}

// Listen forwards events to listener on a new goroutine until the reporter
// is closed or its parent context is cancelled.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.listening.Store(true)
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events returns a read-only channel of progress events.
// Useful when you want to handle events manually instead of using a listener.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}

// LogListener writes events to the logger in its context.
// Steps are logged at debug level, everything else at info or error.
type LogListener struct {
	ctx context.Context //nolint:containedctx
}

// NewLogListener creates a listener logging through ctxlog.Logger(ctx).
func NewLogListener(ctx context.Context) *LogListener {
	return &LogListener{ctx: ctx}
}

// OnEvent implements Listener.
func (l *LogListener) OnEvent(event Event) {
	args := []any{"path", event.Path, "current", event.Current}
	if event.Total != Indeterminate {
		args = append(args, "total", event.Total)
	}

	switch event.Type {
	case EventStarted:
		ctxlog.Info(l.ctx, "progress started", args...)
	case EventStep:
		ctxlog.Debug(l.ctx, "progress step", args...)
	case EventCompleted:
		ctxlog.Info(l.ctx, "progress completed", args...)
	case EventFailed:
		ctxlog.Error(l.ctx, "progress failed", append(args, "error", event.Data.Error)...)
	}
}
