// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package itemflags

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/matt-FFFFFF/withprogress/internal/itemrun"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// parse runs a command with every shared flag and calls fn from its action.
func parse(t *testing.T, args []string, fn func(*cli.Command) error) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := &cli.Command{
		Name:   "test",
		Writer: &out,
		Flags:  slices.Concat(SourceFlags(), RunFlags(), OutputFlags()),
		Action: func(_ context.Context, cmd *cli.Command) error {
			return fn(cmd)
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(t.Context(), append([]string{"test"}, args...))

	return out.String(), err
}

func TestRunner_FromFlags(t *testing.T) {
	_, err := parse(t, []string{
		"-t", "deploy", "-n", "4", "-w", "2", "-k", "-e", "A=1", "--stream", "-r", "log",
	}, func(cmd *cli.Command) error {
		r := Runner(cmd, []string{"sh", "-c", "true"})

		assert.Equal(t, "deploy", r.Title)
		assert.Equal(t, "sh", r.Command)
		assert.Equal(t, []string{"-c", "true"}, r.Args)
		assert.Equal(t, 4, r.Length)
		assert.Equal(t, 2, r.Workers)
		assert.True(t, r.ContinueOnError)
		assert.Equal(t, map[string]string{"A": "1"}, r.Env)
		assert.Same(t, cmd.Root().Writer, r.Output)

		kind, err := Renderer(cmd)
		require.NoError(t, err)
		assert.Equal(t, renderer.Log, kind)

		return nil
	})
	require.NoError(t, err)
}

func TestRunner_Defaults(t *testing.T) {
	_, err := parse(t, nil, func(cmd *cli.Command) error {
		r := Runner(cmd, []string{"true"})

		assert.Empty(t, r.Args)
		assert.Zero(t, r.Length)
		assert.Zero(t, r.Workers)
		assert.Nil(t, r.Output)
		assert.Equal(t, "-", cmd.String(ItemsFlag))

		kind, err := Renderer(cmd)
		require.NoError(t, err)
		assert.Equal(t, renderer.Bar, kind)

		opts := OutputOptions(cmd)
		assert.True(t, opts.IncludeStdErr)
		assert.False(t, opts.IncludeStdOut)

		return nil
	})
	require.NoError(t, err)
}

func TestRendererEnvVar(t *testing.T) {
	t.Setenv(RendererEnvVar, "none")

	_, err := parse(t, nil, func(cmd *cli.Command) error {
		kind, err := Renderer(cmd)
		require.NoError(t, err)
		assert.Equal(t, renderer.None, kind)

		return nil
	})
	require.NoError(t, err)
}

func TestReport(t *testing.T) {
	failed := &itemrun.Result{Item: "bad", ExitCode: 1, Error: fmt.Errorf("%w: 1", itemrun.ErrNonZeroExit)}
	errBoom := errors.New("boom")

	testCases := []struct {
		name     string
		results  itemrun.Results
		err      error
		wantErr  string
		contains string
	}{
		{
			name:     "success",
			results:  itemrun.Results{{Item: "ok"}},
			contains: "1 items, 0 failed",
		},
		{
			name:     "stopped by an item",
			err:      &itemrun.ItemError{Result: failed},
			wantErr:  ErrItemsFailed.Error(),
			contains: "✗ bad (exit code: 1)",
		},
		{
			name:     "continued past failures",
			results:  itemrun.Results{{Item: "ok"}, failed},
			err:      itemrun.Results{failed}.Err(),
			wantErr:  ErrItemsFailed.Error(),
			contains: "2 items, 1 failed",
		},
		{
			name:    "no results",
			err:     errBoom,
			wantErr: "boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := parse(t, nil, func(cmd *cli.Command) error {
				return Report(cmd, tc.results, tc.err)
			})

			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)

				var exitCoder cli.ExitCoder
				require.ErrorAs(t, err, &exitCoder)
				assert.Equal(t, 1, exitCoder.ExitCode())
			}

			if tc.contains != "" {
				assert.Contains(t, out, tc.contains)
			} else {
				assert.Empty(t, out)
			}
		})
	}
}
