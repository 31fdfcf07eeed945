// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package enum

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"sync"
)

// MaxLineSize is the longest line Lines will read.
const MaxLineSize = 1024 * 1024

var (
	_ Enumerable[string]   = (*Lines)(nil)
	_ Streamer             = (*Lines)(nil)
	_ Failer               = (*Lines)(nil)
	_ Parallelizer[string] = (*Lines)(nil)
)

// Lines is a one-shot stream of the lines of a reader, without their line
// endings. Iterating it consumes the reader.
type Lines struct {
	r   io.Reader
	mu  sync.Mutex
	err error
}

// NewLines creates a line stream over r.
func NewLines(r io.Reader) *Lines {
	return &Lines{r: r}
}

// String creates a line stream over s.
func String(s string) *Lines {
	return NewLines(strings.NewReader(s))
}

// All implements Enumerable.
func (l *Lines) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := bufio.NewScanner(l.r)
		sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)

		for sc.Scan() {
			if !yield(sc.Text()) {
				break
			}
		}

		l.mu.Lock()
		l.err = sc.Err()
		l.mu.Unlock()
	}
}

// Streaming implements Streamer.
func (l *Lines) Streaming() bool {
	return true
}

// Err implements Failer.
func (l *Lines) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.err
}

// InParallel implements Parallelizer.
func (l *Lines) InParallel(workers int) Enumerable[string] {
	return NewParallel[string](l, workers)
}
