// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spotsrp provides a reification of the repo.Spots interface
// which keeps the latest parking spots snapshot in the snapshots and
// spots tables of a PostgreSQL database using GORM.
package spotsrp

import (
	"context"

	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
)

// Repo represents the parking spots repository.
type Repo struct {
	batchSize int
}

// DefaultBatchSize is the number of spots which are inserted by each
// INSERT statement.
const DefaultBatchSize = 100

// New instantiates a spots Repo struct.
func New() *Repo {
	return &Repo{batchSize: DefaultBatchSize}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (spots *Repo) Conn(c repo.Conn) repo.SpotsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Load(ctx context.Context) (*model.Snapshot, error) {
	return Load(ctx, cq.Conn)
}

func (cq connQueryer) Get(
	ctx context.Context, id string,
) (*model.ParkingSpot, error) {
	return Get(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
	batchSize int
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic.
func (spots *Repo) Tx(tx repo.Tx) repo.SpotsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt, batchSize: spots.batchSize}
}

func (tq txQueryer) Load(ctx context.Context) (*model.Snapshot, error) {
	return Load(ctx, tq.Tx)
}

func (tq txQueryer) Get(
	ctx context.Context, id string,
) (*model.ParkingSpot, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) ReplaceAll(
	ctx context.Context, s *model.Snapshot,
) error {
	return ReplaceAll(ctx, tq.Tx, s, tq.batchSize)
}
