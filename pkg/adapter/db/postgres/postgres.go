// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces on top of GORM and its PostgreSQL driver (which uses
// the pgx driver itself). Repositories (in the subpackages) may use
// the embedded *gorm.DB of Conn and Tx for building their queries.
package postgres

import "github.com/momeni/parkwatch/pkg/core/model"

// These constants represent the major, minor, and patch components of
// the current database schema semantic version.
//
// The v1.0.0 is the latest supported database schema version.
const (
	Major = 1 // latest supported schema major version
	Minor = 0 // latest schema minor version in Major series
	Patch = 0 // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}
