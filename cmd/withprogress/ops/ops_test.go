// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ops

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/withprogress/internal/withprogress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestOps(t *testing.T) {
	var out bytes.Buffer

	root := &cli.Command{
		Name:     "withprogress",
		Commands: []*cli.Command{NewCmd()},
		Writer:   &out,
	}

	require.NoError(t, root.Run(t.Context(), []string{"withprogress", "ops"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(withprogress.Operations()))
	assert.Contains(t, lines, "each_with_index")
	assert.Contains(t, lines, "group_by")
	assert.NotContains(t, lines, "with_title")
}
