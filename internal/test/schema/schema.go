// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides database schema verifiers which can be used
// for testing purposes. After a database initialization, the schema
// itself (tables and their columns) may be verified, and for the
// development initialization, the stored parking spots may be checked
// too.
package schema

import (
	"context"
	"testing"

	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columns lists the expected columns of each table in their order.
var Columns = map[string][]string{
	"snapshots": {"id", "refreshed_at"},
	"spots": {
		"snapshot", "seq", "sid", "lat", "lon", "available", "price",
		"time_limit", "will_be_available", "in_minutes",
		"last_updated", "address",
	},
}

// VerifySchema checks that the tables of the `c` connection search
// path have the expected columns. Failures are reported via `t`.
func VerifySchema(ctx context.Context, t *testing.T, c repo.Conn) {
	for table, expected := range Columns {
		rows, err := c.Query(ctx, `SELECT column_name
FROM information_schema.columns
WHERE table_schema=current_schema() AND table_name=$1
ORDER BY ordinal_position`, table)
		require.NoError(t, err, "querying %q columns", table)
		var cols []string
		for rows.Next() {
			var col string
			require.NoError(t, rows.Scan(&col), "scanning column name")
			cols = append(cols, col)
		}
		rows.Close()
		require.NoError(t, rows.Err(), "iterating %q columns", table)
		assert.Equal(t, expected, cols, "columns of %q table", table)
	}
}

// VerifySpotsCount checks that the `c` connection sees exactly `n`
// spots and one snapshot (if `n` is positive) or none (otherwise).
func VerifySpotsCount(
	ctx context.Context, t *testing.T, c repo.Conn, n int,
) {
	for table, expected := range map[string]int{
		"spots":     n,
		"snapshots": min(n, 1),
	} {
		rows, err := c.Query(ctx, "SELECT count(*) FROM "+table)
		require.NoError(t, err, "counting %q rows", table)
		var count int
		require.True(t, rows.Next(), "no count(*) row")
		require.NoError(t, rows.Scan(&count), "scanning count(*)")
		rows.Close()
		assert.Equal(t, expected, count, "rows of %q table", table)
	}
}
