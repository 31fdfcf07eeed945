// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package filter implements the command that prints the items a command
// succeeds for.
package filter

import (
	"context"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/itemflags"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/urfave/cli/v3"
)

const (
	commandArg = "command"
	invertFlag = "invert"
)

// NewCmd returns the filter command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:    "filter",
		Aliases: []string{"select"},
		Usage:   "Print the items a command exits zero for",
		Description: `Runs the command for each item with the item in the ITEM environment
variable and prints the items it succeeded for, in input order.`,
		UsageText: "withprogress filter [options] -- CMD [ARGS...]",
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
			[]cli.Flag{
				&cli.BoolFlag{
					Name:    invertFlag,
					Aliases: []string{"v"},
					Usage:   "Print the items the command fails for instead",
				},
			},
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

	split := runner.Select
	if cmd.Bool(invertFlag) {
		split = runner.Reject
	}

	var selected []string

	err = renderer.Run(ctx, kind, runner.Title, cmd.Root().ErrWriter, func(ctx context.Context) error {
		var runErr error

		selected, runErr = split(ctx, src)

		return runErr
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, item := range selected {
		if _, err := fmt.Fprintln(cmd.Root().Writer, item); err != nil {
			return cli.Exit("failed to write items: "+err.Error(), 1)
		}
	}

	return nil
}
