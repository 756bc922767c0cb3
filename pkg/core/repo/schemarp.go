// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema interface specifies the database schema management repository
// expectations. It is used by the database initialization use case in
// order to (re)create an empty schema and the normal role (using the
// admin role) and then create the tables (using the normal role).
type Schema interface {
	// Conn wraps the provided connection instance and creates a new
	// schema repository connection-based queryer.
	Conn(Conn) SchemaConnQueryer

	// Tx wraps the provided transaction instance and creates a new
	// schema repository transaction-based queryer.
	Tx(Tx) SchemaTxQueryer
}

// SchemaConnQueryer lists queries which may run with a connection.
type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer lists queries which need an ongoing transaction.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have
	// the same number of entries, so they can be used in pair.
	// Passwords are hashed before being sent to the DBMS, so they may
	// not leak in plaintext in the server logs.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error

	// CreateTables creates the spots and snapshots tables in the
	// current search path.
	CreateTables(ctx context.Context) error
}

// SchemaQueryer lists queries which may run with a connection or a
// transaction. Caller is responsible to pass trusted schema names.
type SchemaQueryer interface {
	// DropIfExists drops the `schema` with all of its tables if it
	// exists.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the `schema`, which must not exist.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a login `role` with no password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on `schema` to `role`.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath sets the default search_path of `role` to `schema`.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}
