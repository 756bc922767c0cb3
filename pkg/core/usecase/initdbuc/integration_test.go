// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package initdbuc_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/momeni/parkwatch/internal/test/dbcontainer"
	"github.com/momeni/parkwatch/internal/test/schema"
	"github.com/momeni/parkwatch/pkg/adapter/config/cfg1"
	"github.com/momeni/parkwatch/pkg/adapter/config/vers"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/adapter/hash/scram"
	"github.com/momeni/parkwatch/pkg/adapter/source/mocksrc"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/momeni/parkwatch/pkg/core/usecase/initdbuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type InitDBTestSuite struct {
	Ctx  context.Context
	Pool *postgres.Pool
	Port int

	dbDir  string
	hasher *scram.Mechanism
}

func TestIntegrationInitDB(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	u, err := url.Parse(pg.ConnectionString())
	if ok := assert.NoError(t, err, "parsing DB container URL"); !ok {
		return
	}
	p, err := strconv.Atoi(u.Port())
	if ok := assert.NoError(t, err, "parsing DB container port"); !ok {
		return
	}
	dbDir, err := os.MkdirTemp("", "initdbuc-db")
	if ok := assert.NoError(t, err, "creating temp db dir"); !ok {
		return
	}
	defer func() {
		err := os.RemoveAll(dbDir)
		assert.NoError(t, err, "removing temp db dir")
	}()
	idts := &InitDBTestSuite{
		Ctx:    ctx,
		Pool:   pool,
		Port:   p,
		dbDir:  dbDir,
		hasher: scram.SHA256(),
	}
	t.Run("prod", idts.TestInitProd)
	t.Run("dev", idts.TestInitDev)
}

func (idts *InitDBTestSuite) TestInitProd(t *testing.T) {
	c := idts.createEmptyDB(t, "prod")
	r := require.New(t)
	uc := initdbuc.New(c, nil)
	r.NoError(uc.InitProd(idts.Ctx), "initializing DB for prod")
	idts.verify(t, c, 0)

	r.NoError(uc.InitProd(idts.Ctx), "initializing DB for prod again")
	idts.verify(t, c, 0)
}

func (idts *InitDBTestSuite) TestInitDev(t *testing.T) {
	c := idts.createEmptyDB(t, "dev")
	r := require.New(t)
	src, err := mocksrc.New(mocksrc.WithCount(20), mocksrc.WithSeed(7))
	r.NoError(err, "creating mock source")
	uc := initdbuc.New(c, src)
	r.NoError(uc.InitDev(idts.Ctx), "initializing DB for dev")
	idts.verify(t, c, 20)
}

func (idts *InitDBTestSuite) verify(t *testing.T, c *cfg1.Config, n int) {
	p, err := c.ConnectionPool(idts.Ctx, repo.NormalRole)
	require.NoError(t, err, "creating normal role connection pool")
	defer p.Close()
	err = p.Conn(idts.Ctx, func(ctx context.Context, cn repo.Conn) error {
		schema.VerifySchema(ctx, t, cn)
		schema.VerifySpotsCount(ctx, t, cn, n)
		return nil
	})
	require.NoError(t, err, "verifying database schema")
}

// createEmptyDB creates a database and a superuser admin role for it,
// records the admin password in a fresh passwords dir, and returns a
// settings instance which points to them. Role names take a `name`
// based suffix, so they will not collide with other sub-tests.
func (idts *InitDBTestSuite) createEmptyDB(
	t *testing.T, name string,
) *cfg1.Config {
	r := require.New(t)
	dbName := "pkweb_" + name
	roleSuffix := repo.Role("_" + name)
	u := repo.AdminRole + roleSuffix
	p := randPass(t)
	err := idts.Pool.Conn(
		idts.Ctx, func(ctx context.Context, c repo.Conn) error {
			// The database and role creation DDL statements do not
			// support parameterized queries, nevertheless, the `dbName`
			// and `u` variables are trusted.
			if _, err := c.Exec(ctx, "CREATE DATABASE "+dbName); err != nil {
				return fmt.Errorf("creating %q database: %w", dbName, err)
			}
			hp, err := idts.hasher.Hash(p, "", 15000)
			if err != nil {
				return fmt.Errorf(
					"computing scram hash of password: %w", err,
				)
			}
			if _, err := c.Exec(
				ctx,
				fmt.Sprintf(
					`CREATE ROLE %s
WITH SUPERUSER LOGIN PASSWORD '%s';
GRANT ALL PRIVILEGES ON DATABASE %s TO %[1]s`,
					u, hp, dbName,
				),
			); err != nil {
				return fmt.Errorf("creating %q role: %w", u, err)
			}
			return nil
		},
	)
	r.NoError(err, "creating an empty database")
	d := filepath.Join(idts.dbDir, dbName)
	r.NoError(os.Mkdir(d, 0o700), "creating %q dir", d)
	line := fmt.Sprintf(
		"127.0.0.1:%d:%s:%s:%s\n", idts.Port, dbName, u, p,
	)
	pgpass := filepath.Join(d, ".pgpass")
	r.NoError(
		os.WriteFile(pgpass, []byte(line), 0o600),
		"writing %q file", pgpass,
	)
	c := &cfg1.Config{
		Database: cfg1.Database{
			Host:       "127.0.0.1",
			Port:       idts.Port,
			Name:       dbName,
			PassDir:    d,
			RoleSuffix: roleSuffix,
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: postgres.Version,
				Config:   cfg1.Version,
			},
		},
	}
	r.NoError(c.ValidateAndNormalize(idts.Ctx), "validating settings")
	return c
}

func randPass(t *testing.T) string {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	require.NoError(t, err, "generating a random password")
	return fmt.Sprintf("%x", b)
}
