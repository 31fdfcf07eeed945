// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package enum describes what a data source can do, one small interface per
// capability, and provides adapters for the common sources: slices, iterators,
// line streams and maps.
//
// Every source is an Enumerable. The optional interfaces let consumers ask
// questions without iterating: Sizer and Lener give the element count and a
// Measurer reports it when it is known, Streamer marks one-shot sources whose count is only known after consuming
// them, Failer reports iteration errors, Walker drives a callback itself and
// Parallelizer produces a variant whose Walk runs across a pool of workers.
package enum
