// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	wpprogress "github.com/matt-FFFFFF/withprogress/internal/progress"
)

// ErrInterrupted is returned when the TUI is quit before the work returns.
var ErrInterrupted = errors.New("interrupted from the terminal UI")

var _ wpprogress.Reporter = (*TUIReporter)(nil)

// TUIReporter implements progress.Reporter and forwards events to the TUI.
type TUIReporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewTUIReporter creates a new TUI progress reporter.
func NewTUIReporter(program *tea.Program) *TUIReporter {
	return &TUIReporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (tr *TUIReporter) Report(event wpprogress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	tr.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (tr *TUIReporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	tr.closed = true
}

// Runner manages the TUI program and the work it displays.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *TUIReporter
	mutex    sync.Mutex
}

// NewRunner creates a new TUI runner drawing to stderr. opts are applied after
// the defaults.
func NewRunner(ctx context.Context, title string, opts ...tea.ProgramOption) *Runner {
	model := NewModel(ctx, title)
	program := tea.NewProgram(model, append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	}, opts...)...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewTUIReporter(program),
	}
}

// Reporter returns the progress reporter for this TUI runner.
func (r *Runner) Reporter() wpprogress.Reporter {
	return r.reporter
}

// Run starts the TUI and calls fn with a context whose progress runs are
// displayed. The TUI quits when fn returns. Quitting the TUI first cancels
// fn's context and waits for it.
func (r *Runner) Run(ctx context.Context, fn func(context.Context) error) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCtx = wpprogress.NewContext(workCtx, wpprogress.NewEventTracker(r.reporter))

	workDone := make(chan error, 1)

	go func() {
		err := fn(workCtx)
		workDone <- err

		r.program.Send(DoneMsg{Err: err})
	}()

	_, tuiErr := r.program.Run()

	r.reporter.Close()

	r.model.mutex.RLock()
	completed := r.model.completed
	r.model.mutex.RUnlock()

	if !completed {
		cancel()
	}

	err := <-workDone

	if !completed && err == nil && tuiErr == nil {
		return ErrInterrupted
	}

	if err != nil {
		return err
	}

	if errors.Is(tuiErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}

	return tuiErr
}
