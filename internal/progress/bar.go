// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matt-FFFFFF/withprogress/internal/color"
	"github.com/schollz/progressbar/v3"
)

const (
	barThrottle    = 65 * time.Millisecond
	barSpinnerType = 14
	pathSeparator  = " › "
)

var _ Tracker = (*BarTracker)(nil)

// BarTracker draws one terminal progress bar per run.
// Indeterminate runs are drawn as a spinner with a counter.
type BarTracker struct {
	w    io.Writer
	opts []progressbar.Option
}

// NewBarTracker creates a tracker drawing to w (stderr when nil).
// opts are applied after the defaults.
func NewBarTracker(w io.Writer, opts ...progressbar.Option) *BarTracker {
	if w == nil {
		w = os.Stderr
	}

	return &BarTracker{w: w, opts: opts}
}

// Begin implements Tracker.
func (t *BarTracker) Begin(ctx context.Context, title string, total int) Run {
	desc := strings.Join(append(PathFromContext(ctx), title), pathSeparator)

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(color.ForWriter(t.w)),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionThrottle(barThrottle),
		progressbar.OptionSpinnerType(barSpinnerType),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(t.w) //nolint:errcheck
		}),
	}

	return &barRun{
		bar: progressbar.NewOptions64(int64(total), append(opts, t.opts...)...),
	}
}

type barRun struct {
	bar *progressbar.ProgressBar
}

func (r *barRun) Step() {
	_ = r.bar.Add(1)
}

func (r *barRun) Finish(err error) {
	if err != nil {
		_ = r.bar.Exit()
		return
	}

	_ = r.bar.Finish()
}
