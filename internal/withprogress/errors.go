// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package withprogress

import "errors"

var (
	// ErrUnsupportedOperation is returned for an operation the proxy does not
	// respond to, including InParallel on a source without a parallel variant.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrCallbackRequired is returned by Invoke when an operation that needs a
	// per-element callback is given none.
	ErrCallbackRequired = errors.New("operation requires a callback")
	// ErrNotBool is returned by Invoke when a predicate callback returns
	// something other than a bool.
	ErrNotBool = errors.New("predicate callback must return a bool")
)
