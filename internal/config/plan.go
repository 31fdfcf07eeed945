// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/withprogress/internal/ctxlog"
	"github.com/matt-FFFFFF/withprogress/internal/enum"
	"github.com/spf13/afero"
)

var (
	// ErrReadPlan is returned when the plan file cannot be read.
	ErrReadPlan = errors.New("failed to read plan file")
	// ErrInvalidYaml is returned when a YAML plan cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHcl is returned when an HCL plan cannot be decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
	// ErrUnknownPlanFormat is returned for plan files that are neither YAML nor HCL.
	ErrUnknownPlanFormat = errors.New("unknown plan file format, expected .yaml, .yml or .hcl")
	// ErrInvalidPlan wraps every validation failure of a plan.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrNoCommand is returned when a plan has no command.
	ErrNoCommand = errors.New("no command specified")
	// ErrItemsConflict is returned when a plan gives both items and items_from.
	ErrItemsConflict = errors.New("items and items_from are mutually exclusive")
	// ErrNoItems is returned when a plan gives neither items nor items_from.
	ErrNoItems = errors.New("one of items or items_from is required")
	// ErrNegativeWorkers is returned when workers is below zero.
	ErrNegativeWorkers = errors.New("workers must not be negative")
	// ErrNegativeLength is returned when length is below zero.
	ErrNegativeLength = errors.New("length must not be negative")
)

// Plan describes a command to run once per item, with progress.
type Plan struct {
	Title           string   `yaml:"title"             hcl:"title,optional"`
	Items           []string `yaml:"items"             hcl:"items,optional"`
	ItemsFrom       string   `yaml:"items_from"        hcl:"items_from,optional"`
	Length          *int     `yaml:"length"            hcl:"length,optional"`
	Workers         int      `yaml:"workers"           hcl:"workers,optional"`
	Command         string   `yaml:"command"           hcl:"command,optional"`
	Args            []string `yaml:"args"              hcl:"args,optional"`
	Renderer        string   `yaml:"renderer"          hcl:"renderer,optional"`
	ContinueOnError bool     `yaml:"continue_on_error" hcl:"continue_on_error,optional"`
}

// Load reads and validates the plan at path. The format is chosen by file
// extension.
func Load(ctx context.Context, path string) (*Plan, error) {
	content, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadPlan, err)
	}

	ctxlog.Debug(ctx, "loaded plan file", "path", path, "bytes", len(content))

	p, err := Parse(path, content)
	if err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse decodes content as a plan. filename selects the format and is used in
// diagnostics.
func Parse(filename string, content []byte) (*Plan, error) {
	p := &Plan{}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, content, nil, p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHcl, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlanFormat, filename)
	}

	return p, nil
}

// Validate reports every problem with the plan at once.
func (p *Plan) Validate() error {
	var err error

	if strings.TrimSpace(p.Command) == "" {
		err = multierror.Append(err, ErrNoCommand)
	}

	switch {
	case len(p.Items) > 0 && p.ItemsFrom != "":
		err = multierror.Append(err, ErrItemsConflict)
	case len(p.Items) == 0 && p.ItemsFrom == "":
		err = multierror.Append(err, ErrNoItems)
	}

	if p.Workers < 0 {
		err = multierror.Append(err, ErrNegativeWorkers)
	}

	if p.Length != nil && *p.Length < 0 {
		err = multierror.Append(err, ErrNegativeLength)
	}

	if err != nil {
		return errors.Join(ErrInvalidPlan, err)
	}

	return nil
}

// Source returns the plan's items as a source. Items read from a file or URL
// are a line stream; the returned close function releases it.
func (p *Plan) Source(ctx context.Context) (enum.Enumerable[string], func() error, error) {
	if len(p.Items) > 0 {
		return enum.Slice[string](p.Items), func() error { return nil }, nil
	}

	rc, err := OpenItems(ctx, p.ItemsFrom)
	if err != nil {
		return nil, nil, err
	}

	return enum.NewLines(rc), rc.Close, nil
}
