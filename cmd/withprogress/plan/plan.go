// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan implements the command that runs a YAML or HCL plan file.
package plan

import (
	"context"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/itemflags"
	"github.com/matt-FFFFFF/withprogress/internal/config"
	"github.com/matt-FFFFFF/withprogress/internal/itemrun"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/urfave/cli/v3"
)

const (
	fileArg          = "file"
	validateOnlyFlag = "validate"
)

// NewCmd returns the plan command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Run the command described by a plan file",
		Description: `Runs a plan written in YAML (.yaml, .yml) or HCL (.hcl). A plan names
the command, its arguments and the items to run it for.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      fileArg,
				UsageText: "PLANFILE",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: slices.Concat(
			[]cli.Flag{
				itemflags.NewRendererFlag(),
				&cli.BoolFlag{
					Name:  validateOnlyFlag,
					Usage: "Check the plan and exit",
				},
			},
			itemflags.OutputFlags(),
		),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	fileName := cmd.StringArg(fileArg)
	if fileName == "" {
		return cli.Exit("Please provide a plan file to run", 1)
	}

	p, err := config.Load(ctx, fileName)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load plan %s: %s", fileName, err.Error()), 1)
	}

	if cmd.Bool(validateOnlyFlag) {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s is valid\n", fileName)
		return err
	}

	rendererName := p.Renderer
	if cmd.IsSet(itemflags.RendererFlag) || rendererName == "" {
		rendererName = cmd.String(itemflags.RendererFlag)
	}

	kind, err := renderer.Parse(rendererName)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src, closeSrc, err := p.Source(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeSrc() //nolint:errcheck

	runner := &itemrun.Runner{
		Title:           p.Title,
		Command:         p.Command,
		Args:            p.Args,
		Workers:         p.Workers,
		ContinueOnError: p.ContinueOnError,
	}

	if p.Length != nil {
		runner.Length = *p.Length
	}

	var results itemrun.Results

	err = renderer.Run(ctx, kind, runner.Title, cmd.Root().ErrWriter, func(ctx context.Context) error {
		var runErr error

		results, runErr = runner.Run(ctx, src)

		return runErr
	})

	return itemflags.Report(cmd, results, err)
}
