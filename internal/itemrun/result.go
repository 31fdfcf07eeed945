// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package itemrun

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Result is the outcome of running the command for one item.
type Result struct {
	Item     string        // The item, as passed in ITEM
	ExitCode int           // Exit code, -1 when the process did not run
	Error    error         // Error, if any
	StdOut   []byte        // Output of the command
	StdErr   []byte        // Error output of the command
	Duration time.Duration // Wall time of the command
}

// Failed reports whether the item failed.
func (r *Result) Failed() bool {
	return r.Error != nil || r.ExitCode != 0
}

// ItemError is the error of a failed item. It unwraps to the item's error.
type ItemError struct {
	Result *Result
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %q: %v", e.Result.Item, e.Result.Error)
}

func (e *ItemError) Unwrap() error {
	return e.Result.Error
}

// Results is a slice of Result pointers, in item order.
type Results []*Result

// HasError reports whether any item failed.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, (*Result).Failed)
}

// Failed returns the failed items.
func (r Results) Failed() Results {
	var out Results

	for _, res := range r {
		if res.Failed() {
			out = append(out, res)
		}
	}

	return out
}

// Err combines the errors of every failed item, or returns nil.
func (r Results) Err() error {
	var err *multierror.Error

	for _, res := range r.Failed() {
		err = multierror.Append(err, &ItemError{Result: res})
	}

	return err.ErrorOrNil()
}

// Print outputs the results to stdout with default options.
func (r Results) Print() error {
	return WriteResults(os.Stdout, r, nil)
}

// WriteWithOptions outputs the results to w with the specified options.
func (r Results) WriteWithOptions(w io.Writer, options *OutputOptions) error {
	return WriteResults(w, r, options)
}
