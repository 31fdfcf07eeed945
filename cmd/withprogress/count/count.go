// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package count implements the command that counts items.
package count

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/withprogress/cmd/withprogress/itemflags"
	"github.com/matt-FFFFFF/withprogress/internal/renderer"
	"github.com/matt-FFFFFF/withprogress/internal/withprogress"
	"github.com/urfave/cli/v3"
)

const (
	defaultTitle = "counting"
	tallyFlag    = "tally"
)

// NewCmd returns the count command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Count items, with progress",
		Description: `Prints the number of items. With --tally, prints how often each distinct
item occurs, most frequent first.`,
		Flags: append(itemflags.SourceFlags(), &cli.BoolFlag{
			Name:  tallyFlag,
			Usage: "Count each distinct item",
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	kind, err := itemflags.Renderer(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src, closeSrc, err := itemflags.Source(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeSrc() //nolint:errcheck

	title := cmp.Or(cmd.String(itemflags.TitleFlag), defaultTitle)

	var opts []withprogress.Option
	if n := itemflags.Length(cmd); n > 0 {
		opts = append(opts, withprogress.WithLength(n))
	}

	p := withprogress.New(src, title, opts...)
	w := cmd.Root().Writer

	if !cmd.Bool(tallyFlag) {
		var n int

		err = renderer.Run(ctx, kind, title, cmd.Root().ErrWriter, func(ctx context.Context) error {
			var countErr error

			n, countErr = p.Count(ctx)

			return countErr
		})
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		_, err = fmt.Fprintln(w, n)

		return err
	}

	var groups map[string][]string

	err = renderer.Run(ctx, kind, title, cmd.Root().ErrWriter, func(ctx context.Context) error {
		var groupErr error

		groups, groupErr = withprogress.GroupBy(ctx, p, func(item string) (string, error) {
			return item, nil
		})

		return groupErr
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b string) int {
		return cmp.Or(cmp.Compare(len(groups[b]), len(groups[a])), cmp.Compare(a, b))
	})

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", len(groups[k]), k); err != nil {
			return err
		}
	}

	return nil
}
