// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package each implements the command that runs a command once per item.
package each

import (
	"context"
	"slices"

	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/itemflags"
	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/itemrun"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/urfave/cli/v3"
)

const commandArg = "command"

// NewCmd returns the each command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "each",
		Usage: "Run a command once per item, with progress",
		Description: `Reads items one per line and runs the command for each of them with
the item in the ITEM environment variable. Put the command after "--".`,
		UsageText: "withprogress each [options] -- CMD [ARGS...]",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name:      commandArg,
				UsageText: "CMD [ARGS...]",
				Min:       1,
				Max:       -1,
			},
		},
		Flags: slices.Concat(
			itemflags.SourceFlags(),
			itemflags.RunFlags(),
			itemflags.OutputFlags(),
		),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	command := cmd.StringArgs(commandArg)
	if len(command) == 0 {
		return cli.Exit("Please provide a command to run after --", 1)
	}

	kind, err := itemflags.Renderer(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src, closeSrc, err := itemflags.Source(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeSrc() //nolint:errcheck

	runner := itemflags.Runner(cmd, command)
	ctxlog.Debug(ctx, "running each", "command", command, "workers", runner.Workers, "renderer", kind)

	var results itemrun.Results

	err = renderer.Run(ctx, kind, runner.Title, cmd.Root().ErrWriter, func(ctx context.Context) error {
		var runErr error

		results, runErr = runner.Run(ctx, src)

		return runErr
	})

	return itemflags.Report(cmd, results, err)
}
