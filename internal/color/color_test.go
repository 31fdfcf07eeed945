// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForWriter(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv(NoColor, "1")
	t.Setenv(ForceColor, "")
	assert.False(t, ForWriter(&buf), "NO_COLOR should disable colour")

	t.Setenv(ForceColor, "1")
	assert.False(t, ForWriter(&buf), "NO_COLOR should win over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, ForWriter(&buf), "FORCE_COLOR should enable colour for any writer")

	t.Setenv(ForceColor, "")
	assert.False(t, ForWriter(&buf), "a buffer is not a terminal")
}

func TestPaint(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		codes []Code
		want  string
	}{
		{
			name: "no codes",
			in:   "plain",
			want: "plain",
		},
		{
			name:  "single code",
			in:    "warn",
			codes: []Code{FgYellow},
			want:  "\033[33mwarn\033[0m",
		},
		{
			name:  "multiple codes",
			in:    "title",
			codes: []Code{Bold, FgHiWhite},
			want:  "\033[1;97mtitle\033[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paint(tt.in, tt.codes...))
		})
	}
}

func TestColorize_Disabled(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.Equal(t, "text", Colorize("text", FgRed))
}
