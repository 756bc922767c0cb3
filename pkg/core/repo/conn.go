// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a function which runs queries within a transaction.
// Returning a nil error commits the transaction, while any non-nil
// error rolls it back.
type TxHandler func(context.Context, Tx) error

// Conn represents a single database connection which is acquired
// from a Pool. It is unsafe to be used concurrently.
type Conn interface {
	Queryer

	// Tx begins a transaction, calls handler with it, and commits or
	// rolls back based on the handler returned error.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
