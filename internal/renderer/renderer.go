// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package renderer installs the progress tracker chosen on the command line.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/progress"
	"github.com/matt-FFFFFF/withprogress/internal/tui"
)

// Kind names a way of displaying progress.
type Kind string

const (
	Bar  Kind = "bar"  // One terminal progress bar per run
	TUI  Kind = "tui"  // Interactive tree of runs
	Log  Kind = "log"  // Structured log records
	None Kind = "none" // Nothing
)

const logBufferSize = 100

// ErrUnknownRenderer is returned by Parse for an unknown renderer name.
var ErrUnknownRenderer = errors.New("unknown renderer")

// Kinds lists every renderer.
func Kinds() []Kind {
	return []Kind{Bar, TUI, Log, None}
}

// Parse returns the renderer named name. The empty name selects Bar.
func Parse(name string) (Kind, error) {
	if name == "" {
		return Bar, nil
	}

	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Kinds(), k) {
		return "", fmt.Errorf("%w: %q, expected one of %v", ErrUnknownRenderer, name, Kinds())
	}

	return k, nil
}

// Run calls fn with a context whose progress runs are displayed on w (stderr
// when nil) as kind. title heads the TUI.
func Run(ctx context.Context, kind Kind, title string, w io.Writer, fn func(context.Context) error) error {
	if w == nil {
		w = os.Stderr
	}

	switch kind {
	case Bar:
		return fn(progress.NewContext(ctx, progress.NewBarTracker(w)))

	case TUI:
		return tui.NewRunner(ctx, title).Run(ctx, fn)

	case Log:
		level := min(ctxlog.LevelVar.Level(), slog.LevelInfo)
		logger := slog.New(ctxlog.NewPrettyHandler(
			&slog.HandlerOptions{Level: level},
			ctxlog.WithDestinationWriter(w),
			ctxlog.WithAutoColour(),
		))

		reporter := progress.NewChannelReporter(ctx, logBufferSize)
		reporter.Listen(progress.NewLogListener(ctxlog.New(ctx, logger)))

		defer reporter.Close()

		return fn(progress.NewContext(ctx, progress.NewEventTracker(reporter)))

	case None:
		return fn(progress.NewContext(ctx, progress.NullTracker{}))
	}

	return fmt.Errorf("%w: %q", ErrUnknownRenderer, kind)
}
