// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package itemrun runs an operating system command once for every item of a
// source, with the item in the ITEM environment variable, and reports one
// progress step per item.
package itemrun
