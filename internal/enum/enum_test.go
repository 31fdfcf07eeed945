// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package enum

import (
	"bufio"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	s := Slice[int]{1, 2, 3}

	assert.Equal(t, []int{1, 2, 3}, slices.Collect(s.All()))
	assert.Equal(t, 3, s.Len())

	n, ok := Length(s)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.False(t, IsStream(s))
}

func TestSeq(t *testing.T) {
	s := Seq[string](slices.Values([]string{"a", "b"}))

	_, ok := Length(s)
	assert.False(t, ok, "an iterator has no size")

	n, err := Count[string](s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trailing newline",
			input: "a\nb\nc\n",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "no trailing newline",
			input: "a\nb",
			want:  []string{"a", "b"},
		},
		{
			name:  "crlf",
			input: "a\r\nb\r\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := String(tt.input)
			assert.True(t, IsStream(l))

			got, err := Collect[string](l)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLines_OneShot(t *testing.T) {
	l := NewLines(strings.NewReader("x\ny\n"))

	first, err := Collect[string](l)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := Collect[string](l)
	require.NoError(t, err)
	assert.Empty(t, second, "a consumed stream yields nothing")
}

func TestLines_TooLong(t *testing.T) {
	l := String(strings.Repeat("x", MaxLineSize+1))

	_, err := Collect[string](l)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.ErrorIs(t, Err(l), bufio.ErrTooLong)
}

func TestEntries(t *testing.T) {
	e := Entries(map[string]int{"c": 3, "a": 1, "d": 4, "b": 2})
	assert.Equal(t, 4, e.Len())

	want := Slice[Pair[string, int]]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
		{Key: "d", Value: 4},
	}
	assert.Equal(t, want, e)

	assert.Empty(t, Entries(map[int]string{}))
}
