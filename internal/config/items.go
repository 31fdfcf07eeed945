// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/spf13/afero"
)

// StdinItems is the items source that reads standard input.
const StdinItems = "-"

var (
	// ErrOpenItems is returned when an items source cannot be opened.
	ErrOpenItems = errors.New("failed to open items")
	// ErrGetItems is returned when an items URL cannot be fetched.
	ErrGetItems = errors.New("failed to get items")
)

// OpenItems opens src for reading. src is "-" for standard input, a path on
// the filesystem, or anything go-getter can fetch as a single file.
func OpenItems(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrOpenItems)
	}

	if src == StdinItems {
		return io.NopCloser(Stdin), nil
	}

	fs := FsFactory()

	if ok, _ := afero.Exists(fs, src); ok {
		f, err := fs.Open(src)
		if err != nil {
			return nil, errors.Join(ErrOpenItems, err)
		}

		return f, nil
	}

	content, err := getURL(ctx, src)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

// getURL downloads the file at url into a temporary directory and returns its
// content.
func getURL(ctx context.Context, url string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "withprogress-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetItems, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetItems, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "items"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	ctxlog.Debug(ctx, "fetching items", "url", url)

	res, err := cli.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetItems, err)
	}

	content, err := os.ReadFile(res.Dst)
	if err != nil {
		return nil, errors.Join(ErrGetItems, err)
	}

	return content, nil
}
