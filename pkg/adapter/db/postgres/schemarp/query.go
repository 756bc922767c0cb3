// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/momeni/parkwatch/pkg/core/scram"
)

// ScramIterations is the PBKDF2 iterations count of the hashed role
// passwords, as recommended by RFC 7677.
const ScramIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func roleIdent(roleSuffix, role repo.Role) string {
	return ident(string(role + roleSuffix))
}

// literal quotes s as a SQL string literal. It is only used for DDL
// statements which do not accept bind parameters.
func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// DropIfExists drops the `schema` schema with cascade if it exists.
// That is, if `schema` does not exist, a nil error will be returned
// without any change, and if it exists, all of its tables are dropped
// too.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(
		ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE",
	)
	return err
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "CREATE SCHEMA "+ident(schema))
	return err
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords may be used for setting a password.
//
// The `role` role name is suffixed by `roleSuffix` if it is not empty.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	rows, err := q.Query(
		ctx, "SELECT 1 FROM pg_roles WHERE rolname=$1",
		string(role+roleSuffix),
	)
	if err != nil {
		return fmt.Errorf("querying pg_roles: %w", err)
	}
	exists := rows.Next()
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("reading pg_roles: %w", err)
	}
	if exists {
		return nil
	}
	_, err = q.Exec(ctx, "CREATE ROLE "+roleIdent(roleSuffix, role)+" LOGIN")
	return err
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s",
		ident(schema), roleIdent(roleSuffix, role),
	))
	return err
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		roleIdent(roleSuffix, role), ident(schema),
	))
	return err
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// These fields are not combined as a struct with two role and
// password fields because passing items separately ensures that
// all items are initialized explicitly.
//
// The `hasher` will be used for hashing of the `passwords` before
// sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected format.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, r := range roles {
		h, err := hasher.Hash(passwords[i], "", ScramIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", r, err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s PASSWORD %s",
			roleIdent(roleSuffix, r), literal(h),
		))
		if err != nil {
			return fmt.Errorf("altering %q role: %w", r, err)
		}
	}
	return nil
}

// Tables contains the DDL statements of the current schema version.
// Spots refer to their snapshot, so replacing a snapshot removes its
// spots too. The seq column keeps the order of spots in a snapshot.
const Tables = `CREATE TABLE snapshots (
    id UUID PRIMARY KEY,
    refreshed_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE spots (
    snapshot UUID NOT NULL REFERENCES snapshots (id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    sid TEXT NOT NULL,
    lat DOUBLE PRECISION NOT NULL,
    lon DOUBLE PRECISION NOT NULL,
    available BOOLEAN NOT NULL,
    price DOUBLE PRECISION CHECK (price >= 0),
    time_limit INTEGER CHECK (time_limit >= 0),
    will_be_available BOOLEAN NOT NULL,
    in_minutes INTEGER CHECK (in_minutes >= 0),
    last_updated TIMESTAMPTZ NOT NULL,
    address TEXT NOT NULL,
    PRIMARY KEY (snapshot, sid),
    UNIQUE (snapshot, seq),
    CHECK (in_minutes IS NULL OR will_be_available)
)`

// CreateTables creates the snapshots and spots tables in the current
// search_path.
func CreateTables(ctx context.Context, tx *postgres.Tx) error {
	if _, err := tx.Exec(ctx, Tables); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
