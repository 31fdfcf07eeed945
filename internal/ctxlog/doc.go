// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Progress runs, the item runner and the CLI all log through the logger found in
// the context, so callers decide where diagnostics go (for example the warning
// emitted when a stream has to be collected before its length is known).
// The default handler pretty-prints records to stderr; the level is read from
// the WITHPROGRESS_LOG_LEVEL environment variable.
package ctxlog
