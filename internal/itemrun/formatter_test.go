// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package itemrun

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResults(t *testing.T) {
	results := Results{
		{Item: "ok", StdOut: []byte("fine\n")},
		{
			Item:     "broken",
			ExitCode: 2,
			Error:    fmt.Errorf("%w: 2", ErrNonZeroExit),
			StdOut:   []byte("partial\n"),
			StdErr:   []byte("line one\n\nline three\n"),
		},
	}

	tests := []struct {
		name     string
		options  *OutputOptions
		contains []string
		excludes []string
	}{
		{
			name:     "failures only",
			options:  &OutputOptions{IncludeStdErr: true},
			contains: []string{"✗ broken (exit code: 2)", "➜ Error: non-zero exit code: 2", "     line one\n\n     line three\n", "2 items, 1 failed"},
			excludes: []string{"✓ ok", "partial"},
		},
		{
			name:     "success details and stdout",
			options:  &OutputOptions{IncludeStdOut: true, ShowSuccessDetails: true},
			contains: []string{"✓ ok", "     fine\n", "     partial\n"},
			excludes: []string{"line one"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, results.WriteWithOptions(&buf, tc.options))

			for _, s := range tc.contains {
				assert.Contains(t, buf.String(), s)
			}

			for _, s := range tc.excludes {
				assert.NotContains(t, buf.String(), s)
			}

			assert.NotContains(t, buf.String(), "\033[")
		})
	}
}

func TestWriteResults_Colour(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteResults(&buf, Results{{Item: "a"}}, &OutputOptions{Colour: true}))
	assert.Contains(t, buf.String(), "\033[1;32m1 items, 0 failed\033[0m")
}
