// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filter

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/withprogress/internal/config"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	stubs := gostub.Stub(&config.Stdin, io.Reader(strings.NewReader(stdin)))
	defer stubs.Reset()

	var out bytes.Buffer

	root := &cli.Command{
		Name:           "withprogress",
		Commands:       []*cli.Command{NewCmd()},
		Writer:         &out,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(t.Context(), append([]string{"withprogress", "filter"}, args...))

	return out.String(), err
}

func TestFilter(t *testing.T) {
	const items = "main.go\nREADME.md\nmain_test.go\ngo.mod\n"

	isGo := []string{"--", "sh", "-c", `case "$ITEM" in *.go) exit 0;; *) exit 1;; esac`}

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "sequential",
			args: append([]string{"--renderer", "none"}, isGo...),
			want: "main.go\nmain_test.go\n",
		},
		{
			name: "parallel keeps input order",
			args: append([]string{"--renderer", "none", "--workers", "4"}, isGo...),
			want: "main.go\nmain_test.go\n",
		},
		{
			name: "invert",
			args: append([]string{"--renderer", "none", "-v"}, isGo...),
			want: "README.md\ngo.mod\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, items, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestFilter_CommandNotFound(t *testing.T) {
	out, err := run(t, "a\n", "--renderer", "none", "--", "withprogress-command-that-does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not start process")
	assert.Empty(t, out)
}
