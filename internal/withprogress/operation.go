// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package withprogress

import (
	"slices"
	"strings"
)

// Operation names a member of the iteration capability set.
type Operation string

// The iteration capability set.
const (
	OpEach          Operation = "each"
	OpEachWithIndex Operation = "each_with_index"
	OpMap           Operation = "map"
	OpFlatMap       Operation = "flat_map"
	OpSelect        Operation = "select"
	OpFilter        Operation = "filter"
	OpReject        Operation = "reject"
	OpFind          Operation = "find"
	OpDetect        Operation = "detect"
	OpAny           Operation = "any"
	OpAll           Operation = "all"
	OpNone          Operation = "none"
	OpCount         Operation = "count"
	OpPartition     Operation = "partition"
	OpGroupBy       Operation = "group_by"
	OpReduce        Operation = "reduce"
	OpInject        Operation = "inject"
	OpToA           Operation = "to_a"
	OpEntries       Operation = "entries"
	OpSum           Operation = "sum"
	OpMin           Operation = "min"
	OpMax           Operation = "max"
)

// Operations the proxy defines itself, outside the capability set.
const (
	OpWithTitle  Operation = "with_title"
	OpInParallel Operation = "in_parallel"
	OpTitle      Operation = "title"
	OpLength     Operation = "length"
	OpSource     Operation = "source"
)

var capabilities = []Operation{
	OpEach, OpEachWithIndex, OpMap, OpFlatMap, OpSelect, OpFilter, OpReject,
	OpFind, OpDetect, OpAny, OpAll, OpNone, OpCount, OpPartition, OpGroupBy,
	OpReduce, OpInject, OpToA, OpEntries, OpSum, OpMin, OpMax,
}

// Operations returns the iteration capability set.
func Operations() []Operation {
	return slices.Clone(capabilities)
}

// ParseOperation normalises name, accepting a trailing "?" as in "any?".
func ParseOperation(name string) Operation {
	return Operation(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "?"))
}

// IsIteration reports whether op belongs to the iteration capability set.
func (op Operation) IsIteration() bool {
	return slices.Contains(capabilities, op)
}
