// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package itemrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/enum"
	"github.com/matt-FFFFFF/withprogress/internal/withprogress"
)

// ItemEnvVar is the environment variable holding the current item.
const ItemEnvVar = "ITEM"

const defaultTitle = "items"

var (
	// ErrNoCommand is returned when the runner has no command.
	ErrNoCommand = errors.New("no command specified")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrNonZeroExit is returned when the command exits with a non-zero code.
	ErrNonZeroExit = errors.New("non-zero exit code")
)

// Runner runs Command with Args once per item.
type Runner struct {
	Title           string            // Progress title, defaults to "items"
	Command         string            // The command to run, looked up in PATH
	Args            []string          // Arguments, without the command itself
	Env             map[string]string // Extra environment variables
	Workers         int               // Items run concurrently; 0 runs them in order
	Length          int               // Expected item count; zero or less resolves it from the source
	ContinueOnError bool              // Run every item and return the combined failures
	Output          io.Writer         // Receives each item's stdout once it finishes, if set

	mu sync.Mutex
}

// Run runs the command for every element of src. Without ContinueOnError the
// first failure stops the run and is returned as an *ItemError; results are
// then nil. With it, every result is returned alongside Results.Err.
func (r *Runner) Run(ctx context.Context, src enum.Enumerable[string]) (Results, error) {
	p, err := r.proxy(src)
	if err != nil {
		return nil, err
	}

	ctx = ctxlog.With(ctx, "command", r.Command)

	results, err := withprogress.Map(ctx, p, func(item string) (*Result, error) {
		res := r.runItem(ctx, item)
		r.writeOutput(res)

		if res.Failed() && !r.ContinueOnError {
			return nil, &ItemError{Result: res}
		}

		return res, nil
	})
	if err != nil {
		return nil, err
	}

	out := Results(results)

	return out, out.Err()
}

func (r *Runner) proxy(src enum.Enumerable[string]) (*withprogress.Proxy[string], error) {
	if r.Command == "" {
		return nil, ErrNoCommand
	}

	title := r.Title
	if title == "" {
		title = defaultTitle
	}

	var opts []withprogress.Option
	if r.Length > 0 {
		opts = append(opts, withprogress.WithLength(r.Length))
	}

	p := withprogress.New(src, title, opts...)
	if r.Workers > 0 {
		return p.InParallel(r.Workers)
	}

	return p, nil
}

func (r *Runner) runItem(ctx context.Context, item string) *Result {
	res := &Result{Item: item}

	env := os.Environ()
	env = append(env, fmt.Sprintf("%s=%s", ItemEnvVar, item))

	for k, v := range r.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Env = env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	ctxlog.Debug(ctx, "running item", "item", item, "args", r.Args)

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.StdOut = stdout.Bytes()
	res.StdErr = stderr.Bytes()

	var exitErr *exec.ExitError

	switch {
	case err == nil:
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Error = errors.Join(ctx.Err(), err)
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Error = fmt.Errorf("%w: %d", ErrNonZeroExit, res.ExitCode)
	default:
		res.ExitCode = -1
		res.Error = errors.Join(ErrCouldNotStartProcess, err)
	}

	if res.Failed() {
		ctxlog.Debug(ctx, "item failed", "item", item, "exitCode", res.ExitCode, "error", res.Error)
	}

	return res
}

func (r *Runner) writeOutput(res *Result) {
	if r.Output == nil || len(res.StdOut) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = r.Output.Write(res.StdOut)
}

// Select runs the command for every element of src and returns the items it
// succeeded for, in source order. Non-zero exits reject an item; failing to
// start the command stops the run.
func (r *Runner) Select(ctx context.Context, src enum.Enumerable[string]) ([]string, error) {
	return r.split(ctx, src, (*withprogress.Proxy[string]).Filter)
}

// Reject is like Select but returns the items the command failed for.
func (r *Runner) Reject(ctx context.Context, src enum.Enumerable[string]) ([]string, error) {
	return r.split(ctx, src, (*withprogress.Proxy[string]).Reject)
}

type splitFunc func(*withprogress.Proxy[string], context.Context, func(string) (bool, error)) ([]string, error)

func (r *Runner) split(ctx context.Context, src enum.Enumerable[string], fn splitFunc) ([]string, error) {
	p, err := r.proxy(src)
	if err != nil {
		return nil, err
	}

	ctx = ctxlog.With(ctx, "command", r.Command)

	return fn(p, ctx, func(item string) (bool, error) {
		res := r.runItem(ctx, item)
		r.writeOutput(res)

		if res.ExitCode < 0 {
			return false, &ItemError{Result: res}
		}

		return !res.Failed(), nil
	})
}
