// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer is the common part of Conn and Tx which may execute SQL
// statements. Repositories which run raw SQL (instead of a query
// builder) depend on it.
type Queryer interface {
	// Exec runs a statement which returns no rows and reports the
	// number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)

	// Query runs a statement and returns its result rows. Caller must
	// Close the returned rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows represents a query result set which is consumed one row
// at a time.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
