// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package withprogress wraps a data source so that iterating it drives a
// progress run.
//
//	p := withprogress.New[string](enum.String(input), "hashing")
//	sums, err := withprogress.Map(ctx, p, hash)
//
// Every operation of the iteration capability set (see Operations) resolves
// the expected number of steps, opens a progress run on the tracker found in
// the context and registers one step per element handed to the callback.
// Operations without a callback (Count, ToSlice, Sum, Min, Max) run as a
// single step of an indeterminate run.
//
// The step count comes from, in order: an explicit WithLength, the source's
// Size or Len, or a count over the source. Streams (enum.Streamer) are
// collected into memory first, with a warning logged, because counting would
// consume them.
package withprogress
