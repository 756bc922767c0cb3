// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parkwatch/pkg/adapter/cache/redis/spotscache"
	"github.com/momeni/parkwatch/pkg/core/model"
)

func snapshot() *model.Snapshot {
	price, tl, m, d := 25.0, 60, 10, 1.5
	ts := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	return &model.Snapshot{
		ID:          uuid.MustParse("9b7f6d0e-8a4c-4b7e-9a51-3c5d0f1e2a3b"),
		RefreshedAt: ts,
		Spots: []model.ParkingSpot{
			{
				ID:          "spot-0",
				Coordinate:  model.Coordinate{Lat: 19.07, Lon: 72.88},
				Available:   true,
				Price:       &price,
				TimeLimit:   &tl,
				LastUpdated: ts,
				Address:     "12, Hill Road, Bandra, Marg",
				Distance:    &d,
			},
			{
				ID:         "spot-1",
				Coordinate: model.Coordinate{Lat: 19.08, Lon: 72.87},
				Prediction: model.Prediction{
					WillBeAvailable: true, InMinutes: &m,
				},
				LastUpdated: ts,
				Address:     "7, Juhu Road, Juhu",
			},
		},
	}
}

func TestEncodeDecode(t *testing.T) {
	s := snapshot()
	b, err := spotscache.Encode(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"distance"`)
	assert.Contains(t, string(b), `"latitude":19.07`)
	assert.NotNil(t, s.Spots[0].Distance, "Encode must not modify s")

	got, err := spotscache.Decode(b)
	require.NoError(t, err)
	want := snapshot()
	want.Spots[0].Distance = nil
	assert.Equal(t, want, got)
}

func TestDecodeRejectsInvalidSpots(t *testing.T) {
	_, err := spotscache.Decode([]byte(`{"spots":[{"id":""}]}`))
	assert.Error(t, err)
	_, err = spotscache.Decode([]byte(`{"spots":[{"id":"x",` +
		`"prediction":{"will_be_available":false,"in_minutes":3}}]}`))
	assert.ErrorIs(t, err, model.ErrInconsistentPrediction)
	_, err = spotscache.Decode([]byte(`not json`))
	assert.Error(t, err)
	_, err = spotscache.Encode(nil)
	assert.Error(t, err)
}

func TestUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := spotscache.New(rdb, "")
	ctx := context.Background()

	_, err := c.Load(ctx)
	assert.Error(t, err)
	assert.Error(t, c.Store(ctx, snapshot(), time.Minute))
	assert.Error(t, c.Store(ctx, snapshot(), 0), "ttl must be positive")

	_, err = spotscache.Dial(ctx, "127.0.0.1:1", 0)
	assert.Error(t, err)
}
