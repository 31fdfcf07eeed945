// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads plan files, which describe a command to run once for
// every item of a list, and opens the items they refer to.
//
// Plans are YAML (.yaml, .yml) or HCL (.hcl) with the same attribute names:
//
//	title     = "deploy"
//	items     = ["eu", "us"]
//	command   = "./deploy.sh"
//	workers   = 2
//
// Files are read through FsFactory so tests can substitute an in-memory
// filesystem.
package config
