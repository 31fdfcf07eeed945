// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package itemrun

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/withprogress/internal/color"
)

const detailIndent = "     "

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include stdout in the output
	IncludeStdErr      bool // Whether to include stderr in the output
	ShowSuccessDetails bool // Whether to list successful items
	Colour             bool // Whether to use ANSI colours
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdErr: true,
		Colour:        color.Enabled(),
	}
}

// WriteResults writes one line per reported item followed by a summary line.
// Successful items are only listed with ShowSuccessDetails.
func WriteResults(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	paint := func(s string, codes ...color.Code) string {
		if !options.Colour {
			return s
		}

		return color.Paint(s, codes...)
	}

	for _, r := range results {
		if !r.Failed() && !options.ShowSuccessDetails {
			continue
		}

		if err := writeResult(w, r, options, paint); err != nil {
			return err
		}
	}

	failed := len(results.Failed())

	summary := fmt.Sprintf("%d items, %d failed", len(results), failed)
	if failed > 0 {
		summary = paint(summary, color.Bold, color.FgRed)
	} else {
		summary = paint(summary, color.Bold, color.FgGreen)
	}

	_, err := fmt.Fprintln(w, summary)

	return err
}

func writeResult(w io.Writer, r *Result, options *OutputOptions, paint func(string, ...color.Code) string) error {
	status, code := "✓", color.FgGreen
	if r.Failed() {
		status, code = "✗", color.FgRed
	}

	line := fmt.Sprintf("%s %s", paint(status, code), paint(r.Item, color.Bold, code))
	if r.ExitCode != 0 {
		line += fmt.Sprintf(" (exit code: %d)", r.ExitCode)
	}

	line += fmt.Sprintf(" [%s]", r.Duration.Round(time.Millisecond))

	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	if r.Error != nil {
		if _, err := fmt.Fprintf(w, "  %s %s\n", paint("➜ Error:", color.FgRed), r.Error); err != nil {
			return err
		}
	}

	if options.IncludeStdOut && len(r.StdOut) > 0 {
		if _, err := fmt.Fprintf(w, "  ➜ Output:\n%s", formatOutput(r.StdOut, detailIndent)); err != nil {
			return err
		}
	}

	if options.IncludeStdErr && len(r.StdErr) > 0 {
		_, err := fmt.Fprintf(w, "  %s\n%s", paint("➜ Error Output:", color.FgHiRed), formatOutput(r.StdErr, detailIndent))
		return err
	}

	return nil
}

// formatOutput indents every non-empty line of output.
func formatOutput(output []byte, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
