// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// Spots interface specifies the parking spots repository expectations.
// A repository keeps exactly one snapshot (the latest refreshed set of
// spots) and replaces it wholesale, so readers see either the old or
// the new set and never a mixture of them.
type Spots interface {
	// Conn wraps the provided connection instance and creates a new
	// spots repository connection-based queryer.
	Conn(Conn) SpotsConnQueryer

	// Tx wraps the provided transaction instance and creates a new
	// spots repository transaction-based queryer.
	Tx(Tx) SpotsTxQueryer
}

// SpotsConnQueryer lists queries which may run with a connection.
type SpotsConnQueryer interface {
	SpotsQueryer
}

// SpotsTxQueryer lists queries which may run in a transaction,
// including the snapshot replacement which needs one.
type SpotsTxQueryer interface {
	SpotsQueryer

	// ReplaceAll removes the stored snapshot and all of its spots and
	// stores the given snapshot instead. Spots order is preserved, so
	// a later Load returns them in the same order.
	ReplaceAll(ctx context.Context, s *model.Snapshot) error
}

// SpotsQueryer lists queries which may run with a connection or
// a transaction.
type SpotsQueryer interface {
	// Load returns the stored snapshot with all of its spots in their
	// stored order. If no snapshot is stored, model.ErrNoSnapshot is
	// returned.
	Load(ctx context.Context) (*model.Snapshot, error)

	// Get returns one spot of the stored snapshot by its id. A missing
	// spot is reported by a cerr.NotFound error.
	Get(ctx context.Context, id string) (*model.ParkingSpot, error)
}
