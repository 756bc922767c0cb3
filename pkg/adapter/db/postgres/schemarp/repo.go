// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop a schema with its tables, and
// manage the database user roles.
package schemarp

import (
	"context"

	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/momeni/parkwatch/pkg/core/scram"
)

// Repo represents a schema management repository.
// All role names which are passed to its queryers are suffixed by
// the roleSuffix, so parallel tests may use distinct roles in one
// database cluster.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo struct. The `roleSuffix`
// is appended to all role names and the `hasher` is used in order to
// hash passwords before sending them to the DBMS.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

type connQueryer struct {
	*postgres.Conn
	roleSuffix repo.Role
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.SchemaConnQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc, roleSuffix: schema.roleSuffix}
}

// DropIfExists drops the `schema` schema (if it exists) with all of
// its tables.
func (cq connQueryer) DropIfExists(
	ctx context.Context, schema string,
) error {
	return DropIfExists(ctx, cq.Conn, schema)
}

// CreateSchema tries to create the `schema` schema.
func (cq connQueryer) CreateSchema(
	ctx context.Context, schema string,
) error {
	return CreateSchema(ctx, cq.Conn, schema)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now.
func (cq connQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, cq.Conn, cq.roleSuffix, role)
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role.
func (cq connQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, cq.Conn, cq.roleSuffix, schema, role)
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func (cq connQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, cq.Conn, cq.roleSuffix, schema, role)
}

type txQueryer struct {
	*postgres.Tx
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic. Returned querier instance can be used to run the
// transaction-specific queries in addition to queries which support
// connections and transactions.
//
// ChangePasswords needs a transaction because new roles should take
// their passwords before being visible to other sessions, and the
// passwords file must be replaced only after the commitment.
// CreateTables needs one because tables must be created together.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{
		Tx: tt, roleSuffix: schema.roleSuffix, hasher: schema.hasher,
	}
}

// DropIfExists drops the `schema` schema (if it exists) with all of
// its tables.
func (tq txQueryer) DropIfExists(
	ctx context.Context, schema string,
) error {
	return DropIfExists(ctx, tq.Tx, schema)
}

// CreateSchema tries to create the `schema` schema.
func (tq txQueryer) CreateSchema(
	ctx context.Context, schema string,
) error {
	return CreateSchema(ctx, tq.Tx, schema)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now.
func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.Tx, tq.roleSuffix, role)
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role.
func (tq txQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.Tx, tq.roleSuffix, schema, role)
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func (tq txQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, tq.Tx, tq.roleSuffix, schema, role)
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction.
func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(
		ctx, tq.Tx, tq.roleSuffix, tq.hasher, roles, passwords,
	)
}

// CreateTables creates the snapshots and spots tables.
func (tq txQueryer) CreateTables(ctx context.Context) error {
	return CreateTables(ctx, tq.Tx)
}
