// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ops implements the command that lists the operations a progress
// proxy reports on.
package ops

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/withprogress/internal/withprogress"
	"github.com/urfave/cli/v3"
)

// NewCmd returns the ops command.
func NewCmd() *cli.Command {
	return &cli.Command{
		Name:  "ops",
		Usage: "List the iteration operations that report progress",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, op := range withprogress.Operations() {
				if _, err := fmt.Fprintln(cmd.Root().Writer, op); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
