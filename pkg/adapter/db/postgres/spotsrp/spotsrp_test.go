// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsrp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parkwatch/internal/test/dbcontainer"
	"github.com/momeni/parkwatch/internal/test/schema"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres/spotsrp"
	"github.com/momeni/parkwatch/pkg/core/cerr"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationSpotsRepoTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
	Repo *spotsrp.Repo
}

func TestIntegrationSpotsRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationSpotsRepoTestSuite{
		Ctx:  ctx,
		Pool: pool,
		Repo: spotsrp.New(),
	})
}

func (isrts *IntegrationSpotsRepoTestSuite) SetupSuite() {
	err := isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return schemarp.CreateTables(ctx, tx.(*postgres.Tx))
			})
		},
	)
	isrts.Require().NoError(err, "failed to create tables")
	err = isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			schema.VerifySchema(ctx, isrts.T(), c)
			return nil
		},
	)
	isrts.Require().NoError(err)
}

func ptr[T any](v T) *T {
	return &v
}

func snapshot(ids ...string) *model.Snapshot {
	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &model.Snapshot{ID: uuid.New(), RefreshedAt: now}
	for i, id := range ids {
		spot := model.ParkingSpot{
			ID: id,
			Coordinate: model.Coordinate{
				Lat: 19.076 + float64(i)/1000, Lon: 72.8777,
			},
			Available:   i%2 == 0,
			LastUpdated: now,
			Address:     "12, Hill Road, Bandra, Lane",
		}
		if i%2 == 1 {
			spot.Price = ptr(40.0)
			spot.TimeLimit = ptr(60)
			spot.Prediction = model.Prediction{
				WillBeAvailable: true, InMinutes: ptr(i),
			}
		}
		s.Spots = append(s.Spots, spot)
	}
	return s
}

func (isrts *IntegrationSpotsRepoTestSuite) replace(
	s *model.Snapshot, fail error,
) error {
	return isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				if err := isrts.Repo.Tx(tx).ReplaceAll(ctx, s); err != nil {
					return err
				}
				return fail
			})
		},
	)
}

func (isrts *IntegrationSpotsRepoTestSuite) load() (
	s *model.Snapshot, err error,
) {
	err = isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			s, err = isrts.Repo.Conn(c).Load(ctx)
			return err
		},
	)
	return
}

func (isrts *IntegrationSpotsRepoTestSuite) TestReplaceLoadAndGet() {
	// a stable order needs more than one INSERT batch
	ids := make([]string, 0, 2*spotsrp.DefaultBatchSize+3)
	for i := cap(ids); i > 0; i-- {
		ids = append(ids, uuid.NewString())
	}
	s1 := snapshot(ids...)
	isrts.Require().NoError(isrts.replace(s1, nil))
	loaded, err := isrts.load()
	isrts.Require().NoError(err)
	isrts.Equal(s1, loaded)

	s2 := snapshot("spot-0", "spot-1")
	isrts.Require().NoError(isrts.replace(s2, nil))
	loaded, err = isrts.load()
	isrts.Require().NoError(err)
	isrts.Equal(s2, loaded, "snapshots must be replaced wholesale")

	errRollback := errors.New("rollback")
	err = isrts.replace(snapshot("spot-9"), errRollback)
	isrts.ErrorIs(err, errRollback)
	loaded, err = isrts.load()
	isrts.Require().NoError(err)
	isrts.Equal(s2, loaded, "failed replacements must be rolled back")

	err = isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			q := isrts.Repo.Conn(c)
			spot, err := q.Get(ctx, "spot-1")
			isrts.Require().NoError(err)
			isrts.Equal(s2.Spots[1], *spot)

			_, err = q.Get(ctx, ids[0])
			var ce *cerr.Error
			isrts.Require().ErrorAs(err, &ce)
			isrts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
			return nil
		},
	)
	isrts.NoError(err)
}

func (isrts *IntegrationSpotsRepoTestSuite) TestNoSnapshot() {
	err := isrts.Pool.Conn(
		isrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				if _, err := tx.Exec(ctx, "DELETE FROM snapshots"); err != nil {
					return err
				}
				_, err := isrts.Repo.Tx(tx).Load(ctx)
				isrts.ErrorIs(err, model.ErrNoSnapshot)
				return errors.New("keep the rows")
			})
		},
	)
	isrts.Error(err)
}
