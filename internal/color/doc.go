// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color renders ANSI SGR sequences and decides whether a writer should
// receive them. NO_COLOR disables colour, FORCE_COLOR enables it, otherwise
// colour is used only for terminals.
package color
