// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/parkwatch/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic query functions in
// the repository packages, so a query may be written once and used
// both with a connection and within a transaction.
// Methods of *Conn and *Tx are only callable on a Q value if they
// are listed here too.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns a gorm session which runs its queries on the
	// underlying connection or transaction.
	GORM(ctx context.Context) *gorm.DB
}
