// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides a terminal user interface for progress runs. It shows
// a live tree of runs, each with a progress bar when its length is known or a
// spinner when it is not, the number of steps done and the elapsed time.
//
// The TUI is fed by a TUIReporter, which receives the events of a
// progress.EventTracker installed in the context passed to the work.
package tui
