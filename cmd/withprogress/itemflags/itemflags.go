// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package itemflags holds the flags shared by the commands that walk a list
// of items, and the helpers that turn them into runner settings.
package itemflags

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/withprogress/internal/color"
	"github.com/matt-FFFFFF/withprogress/internal/config"
	"github.com/matt-FFFFFF/withprogress/internal/enum"
	"github.com/matt-FFFFFF/withprogress/internal/itemrun"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/urfave/cli/v3"
)

const (
	ItemsFlag                = "items"
	TitleFlag                = "title"
	LengthFlag               = "length"
	RendererFlag             = "renderer"
	WorkersFlag              = "workers"
	ContinueOnErrorFlag      = "continue-on-error"
	EnvFlag                  = "env"
	StreamFlag               = "stream"
	OutputStdErrFlag         = "output-stderr"
	OutputStdOutFlag         = "output-stdout"
	OutputSuccessDetailsFlag = "output-success-details"
)

// RendererEnvVar sets the default renderer.
const RendererEnvVar = "WITHPROGRESS_RENDERER"

var (
	// ErrNegative is returned when a count flag is below zero.
	ErrNegative = errors.New("must not be negative")
	// ErrItemsFailed is returned when one or more items failed.
	ErrItemsFailed = errors.New("one or more items failed")
)

func notNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegative, n)
	}

	return nil
}

func validRenderer(s string) error {
	_, err := renderer.Parse(s)
	return err
}

// SourceFlags selects the items and how their progress is shown.
func SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ItemsFlag,
			Aliases:   []string{"i"},
			Usage:     "Read items, one per line, from a file, a URL or '-' for stdin",
			Value:     config.StdinItems,
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:    TitleFlag,
			Aliases: []string{"t"},
			Usage:   "Title of the progress run",
		},
		&cli.IntFlag{
			Name:        LengthFlag,
			Aliases:     []string{"n"},
			Usage:       "Expected number of items; skips reading ahead to count them",
			DefaultText: "counted",
			Validator:   notNegative,
		},
		NewRendererFlag(),
	}
}

// NewRendererFlag selects how progress is displayed.
func NewRendererFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      RendererFlag,
		Aliases:   []string{"r"},
		Usage:     fmt.Sprintf("Progress display, one of %v", renderer.Kinds()),
		Value:     string(renderer.Bar),
		Sources:   cli.EnvVars(RendererEnvVar),
		Validator: validRenderer,
	}
}

// RunFlags control how the command is run for each item.
func RunFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        WorkersFlag,
			Aliases:     []string{"w"},
			Usage:       "Run this many items at once",
			DefaultText: "one at a time",
			Validator:   notNegative,
		},
		&cli.BoolFlag{
			Name:    ContinueOnErrorFlag,
			Aliases: []string{"k"},
			Usage:   "Keep going after an item fails",
		},
		&cli.StringMapFlag{
			Name:    EnvFlag,
			Aliases: []string{"e"},
			Usage:   "Extra environment variable for the command, as KEY=VALUE",
		},
		&cli.BoolFlag{
			Name:  StreamFlag,
			Usage: "Write each item's stdout as soon as it finishes",
		},
	}
}

// OutputFlags control the summary written after the run.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        OutputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful items in the output",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        OutputStdErrFlag,
			Aliases:     []string{"stderr"},
			Usage:       "Include stderr output in the results",
			Value:       true,
			DefaultText: "true",
		},
		&cli.BoolFlag{
			Name:        OutputStdOutFlag,
			Aliases:     []string{"stdout"},
			Usage:       "Include stdout output in the results",
			DefaultText: "false",
			Value:       false,
		},
	}
}

// Renderer returns the renderer chosen on the command line.
func Renderer(cmd *cli.Command) (renderer.Kind, error) {
	return renderer.Parse(cmd.String(RendererFlag))
}

// Length returns the explicit item count, or zero when it was not given.
func Length(cmd *cli.Command) int {
	if !cmd.IsSet(LengthFlag) {
		return 0
	}

	return cmd.Int(LengthFlag)
}

// Source opens the items named by the items flag. The returned function
// closes them.
func Source(ctx context.Context, cmd *cli.Command) (enum.Enumerable[string], func() error, error) {
	rc, err := config.OpenItems(ctx, cmd.String(ItemsFlag))
	if err != nil {
		return nil, nil, err
	}

	return enum.NewLines(rc), rc.Close, nil
}

// Runner builds an item runner for command from the run and source flags.
func Runner(cmd *cli.Command, command []string) *itemrun.Runner {
	r := &itemrun.Runner{
		Title:           cmd.String(TitleFlag),
		Command:         command[0],
		Args:            command[1:],
		Env:             cmd.StringMap(EnvFlag),
		Workers:         cmd.Int(WorkersFlag),
		Length:          Length(cmd),
		ContinueOnError: cmd.Bool(ContinueOnErrorFlag),
	}

	if cmd.Bool(StreamFlag) {
		r.Output = cmd.Root().Writer
	}

	return r
}

// OutputOptions returns the summary options chosen on the command line.
func OutputOptions(cmd *cli.Command) *itemrun.OutputOptions {
	opts := itemrun.DefaultOutputOptions()
	opts.IncludeStdErr = cmd.Bool(OutputStdErrFlag)
	opts.IncludeStdOut = cmd.Bool(OutputStdOutFlag)
	opts.ShowSuccessDetails = cmd.Bool(OutputSuccessDetailsFlag)
	opts.Colour = color.ForWriter(cmd.Root().Writer)

	return opts
}

// Report writes the outcome of an item run to the command's writer and
// returns the error to exit with. A run stopped by a failed item reports that
// item alone.
func Report(cmd *cli.Command, results itemrun.Results, err error) error {
	var itemErr *itemrun.ItemError
	if results == nil && errors.As(err, &itemErr) {
		results = itemrun.Results{itemErr.Result}
	}

	if results == nil {
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		return nil
	}

	if werr := results.WriteWithOptions(cmd.Root().Writer, OutputOptions(cmd)); werr != nil {
		return cli.Exit("failed to write results: "+werr.Error(), 1)
	}

	if err != nil {
		return cli.Exit(fmt.Sprintf("%v: %v", ErrItemsFailed, err), 1)
	}

	return nil
}
