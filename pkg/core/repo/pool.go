// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repositories which are expected by the
// use cases. A repository hides the storage details of one entity
// type (such as the parking spots) and its methods are exposed through
// the connection and transaction based queryers, so use cases may
// decide about the transaction boundaries without knowing about SQL.
package repo

import "context"

// ConnHandler is a function which uses a database connection. The
// connection is returned to its pool after the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool which is safe to be
// used concurrently.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// it afterwards, returning the handler error.
	Conn(ctx context.Context, handler ConnHandler) error

	// Close closes all connections of the pool.
	Close() error
}
