// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the withprogress command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/withprogress"
	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/count"
	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/each"
	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/filter"
	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/ops"
	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/plan"
	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// newRootCmd returns the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			each.NewCmd(),
			filter.NewCmd(),
			count.NewCmd(),
			plan.NewCmd(),
			ops.NewCmd(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "withprogress",
		Description: `withprogress runs commands over lists of items and shows how far along
it is, as a progress bar, an interactive tree, or structured logs.`,
		Usage:     "find . -name '*.go' | withprogress each -- gofmt -l \"$ITEM\"",
		Version:   fmt.Sprintf("%s (commit: %s)", withprogress.Version, withprogress.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh, stop := signalbroker.New(ctx)
	defer stop()

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Err is handled by cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Debug(ctx, "command completed successfully")
}
