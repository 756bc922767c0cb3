// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package initdbuc provides the database initialization use case.
// It (re)creates an empty schema and the normal role using the admin
// role, renews the passwords of both roles, and then creates the
// tables using the normal role. The development initialization also
// fills the tables with one snapshot of parking spots.
package initdbuc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
)

// Settings represents the database-related settings which should be
// provided by a configuration file. It allows a database connection
// pool to be established for an asked role using the ConnectionPool
// method, reports the database schema version, and may be used as a
// factory for the required repositories.
type Settings interface {
	// ConnectionPool creates a database connection pool using the
	// connection information which are kept in this Settings
	// instance. The `r` argument specifies the role name for the
	// created connection pool.
	//
	// Password values are kept in files in a specific password dir
	// and each non-empty and non-commented line of the passwords file
	// should conform with this format:
	//
	//	host:port:dbname:role:password
	//
	// For sake of atomic passwords updating operations, a second
	// temporary passwords file may be created in order to hold the
	// new values of passwords. If such a temporary passwords file was
	// used for establishment of a connection pool, it will be moved to
	// the main passwords file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository.
	// Role names may be optionally suffixed based on the settings and
	// the returned repository uses the same suffix.
	NewSchemaRepo() repo.Schema

	// NewSpotsRepo instantiates a fresh Spots repository.
	NewSpotsRepo() repo.Spots

	// RenewPasswords generates new secure passwords for the given
	// roles and after recording them in a temporary file, will use
	// the change function in order to update the passwords of those
	// roles in the database too. The change function should perform
	// the update operation in a transaction which may or may not be
	// committed when RenewPasswords returns. After a successful
	// commitment, the returned finalizer must be called in order to
	// move the temporary passwords file over the main one.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the semantic version of the database
	// schema which its connection information are kept by Settings.
	SchemaVersion() model.SemVer
}

// Source provides the parking spots which are stored by InitDev.
type Source interface {
	Fetch(ctx context.Context) ([]model.ParkingSpot, error)
}

// UseCase represents the database initialization use case. It may
// be used to initialize database with development or production
// suitable data as asked by the InitDev and InitProd methods.
type UseCase struct {
	settings   Settings    // target settings
	schemaRepo repo.Schema // schema management repo
	src        Source      // development data source
}

// New creates a database initialization UseCase instance, using the
// `s` settings in order to find the target database connection
// information. The `src` is used by InitDev for filling the spots
// table and may be nil if InitDev is not going to be called.
func New(s Settings, src Source) *UseCase {
	return &UseCase{
		settings:   s,
		schemaRepo: s.NewSchemaRepo(),
		src:        src,
	}
}

// InitProd drops pkwebN schema (if N is the relevant major version)
// and (re)creates it, using the admin role. It also creates the normal
// role (if it does not exist), grants privileges on the created schema
// to normal role so it can create tables, and renews passwords of both
// admin and normal roles. These operations will be performed using the
// admin role in a single transaction and coordinated with password
// files so they can be repeated in case of an abrupt failure.
// Thereafter, it connects to the target database using the normal role
// and creates the empty tables in a second transaction.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(ctx, nil)
}

// InitDev works like InitProd, but also fills the created tables with
// one snapshot of parking spots, as provided by the use case Source.
func (uc *UseCase) InitDev(ctx context.Context) error {
	if uc.src == nil {
		return fmt.Errorf("no spots source is configured")
	}
	return uc.initDB(ctx, func(ctx context.Context, tx repo.Tx) error {
		spots, err := uc.src.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetching spots: %w", err)
		}
		for i := range spots {
			if err := spots[i].Validate(); err != nil {
				return fmt.Errorf("spot #%d: %w", i, err)
			}
		}
		s := &model.Snapshot{
			ID:          uuid.New(),
			RefreshedAt: time.Now().UTC(),
			Spots:       spots,
		}
		q := uc.settings.NewSpotsRepo().Tx(tx)
		if err := q.ReplaceAll(ctx, s); err != nil {
			return fmt.Errorf("storing spots: %w", err)
		}
		return nil
	})
}

func (uc *UseCase) initDB(
	ctx context.Context, fill func(ctx context.Context, tx repo.Tx) error,
) error {
	if err := uc.dropAndCreateAgain(ctx); err != nil {
		return fmt.Errorf("dropping/recreating schema: %w", err)
	}
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			if err := q.CreateTables(ctx); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			if fill == nil {
				return nil
			}
			return fill(ctx, tx)
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	return nil
}

func (uc *UseCase) dropAndCreateAgain(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			sn := SchemaName(uc.settings.SchemaVersion()[0])
			if err := q.DropIfExists(ctx, sn); err != nil {
				return fmt.Errorf("dropping %q: %w", sn, err)
			}
			if err := q.CreateSchema(ctx, sn); err != nil {
				return fmt.Errorf("creating %q: %w", sn, err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			if err := q.SetSearchPath(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					sn, err,
				)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}

// SchemaName returns the target database schema name for the given
// major version. It should return pkwebN for version N.
func SchemaName(major uint) string {
	return fmt.Sprintf("pkweb%d", major)
}
