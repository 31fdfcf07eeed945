// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress is the progress service used by the proxy.
//
// A run is opened with Start, which asks the Tracker stored in the context to
// begin a run with a title and an expected total (Indeterminate when unknown).
// Inside the run every Step registers one unit of work. Runs nest: a run started
// inside another records the outer run's path, which renderers use to draw a
// tree.
//
// Trackers:
//
//   - NullTracker discards everything.
//   - EventTracker turns runs and steps into Events sent to a Reporter, which
//     the TUI and the log listener consume.
//   - BarTracker draws a terminal bar per run.
package progress
