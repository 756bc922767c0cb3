// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/core/cerr"
	"github.com/momeni/parkwatch/pkg/core/model"
)

type gSnapshot struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	RefreshedAt time.Time
}

func (gs *gSnapshot) TableName() string {
	return "snapshots"
}

type gSpot struct {
	Snapshot        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Seq             int
	SID             string           `gorm:"primaryKey;column:sid"`
	Coordinate      model.Coordinate `gorm:"embedded"`
	Available       bool
	Price           *float64
	TimeLimit       *int
	WillBeAvailable bool
	InMinutes       *int
	LastUpdated     time.Time
	Address         string
}

func (gs *gSpot) TableName() string {
	return "spots"
}

func newGSpot(snapshot uuid.UUID, seq int, s *model.ParkingSpot) gSpot {
	return gSpot{
		Snapshot:        snapshot,
		Seq:             seq,
		SID:             s.ID,
		Coordinate:      s.Coordinate,
		Available:       s.Available,
		Price:           s.Price,
		TimeLimit:       s.TimeLimit,
		WillBeAvailable: s.Prediction.WillBeAvailable,
		InMinutes:       s.Prediction.InMinutes,
		LastUpdated:     s.LastUpdated,
		Address:         s.Address,
	}
}

func (gs *gSpot) Model() model.ParkingSpot {
	return model.ParkingSpot{
		ID:         gs.SID,
		Coordinate: gs.Coordinate,
		Available:  gs.Available,
		Price:      gs.Price,
		TimeLimit:  gs.TimeLimit,
		Prediction: model.Prediction{
			WillBeAvailable: gs.WillBeAvailable,
			InMinutes:       gs.InMinutes,
		},
		LastUpdated: gs.LastUpdated.UTC(),
		Address:     gs.Address,
	}
}

// ReplaceAll deletes all snapshots (and their spots by cascade) and
// inserts the `s` snapshot with its spots in batches of `batchSize`.
// Spots are numbered by their index, so Load can keep their order.
// It must run in a transaction, so readers never see an empty or
// partially filled snapshot.
func ReplaceAll(
	ctx context.Context, tx *postgres.Tx, s *model.Snapshot, batchSize int,
) error {
	gdb := tx.GORM(ctx)
	if err := gdb.Exec("DELETE FROM snapshots").Error; err != nil {
		return fmt.Errorf("deleting snapshots: %w", err)
	}
	gs := &gSnapshot{ID: s.ID, RefreshedAt: s.RefreshedAt}
	if err := gdb.Create(gs).Error; err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	if len(s.Spots) == 0 {
		return nil
	}
	spots := make([]gSpot, 0, len(s.Spots))
	for i := range s.Spots {
		spots = append(spots, newGSpot(s.ID, i, &s.Spots[i]))
	}
	if err := gdb.CreateInBatches(spots, batchSize).Error; err != nil {
		return fmt.Errorf("inserting spots: %w", err)
	}
	return nil
}

// Load returns the latest snapshot with its spots in their original
// order. If no snapshot exists, model.ErrNoSnapshot is returned.
func Load[Q postgres.Queryer](
	ctx context.Context, q Q,
) (*model.Snapshot, error) {
	gdb := q.GORM(ctx)
	var snapshots []gSnapshot
	err := gdb.Order("refreshed_at DESC").Limit(1).Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, model.ErrNoSnapshot
	}
	gs := snapshots[0]
	var spots []gSpot
	err = gdb.Where("snapshot=?", gs.ID).Order("seq").Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("querying spots: %w", err)
	}
	s := &model.Snapshot{
		ID:          gs.ID,
		RefreshedAt: gs.RefreshedAt.UTC(),
		Spots:       make([]model.ParkingSpot, 0, len(spots)),
	}
	for i := range spots {
		s.Spots = append(s.Spots, spots[i].Model())
	}
	return s, nil
}

// Get returns the `id` spot of the stored snapshot. If it is missing,
// a cerr.NotFound error is returned.
func Get[Q postgres.Queryer](
	ctx context.Context, q Q, id string,
) (*model.ParkingSpot, error) {
	gdb := q.GORM(ctx)
	var spots []gSpot
	err := gdb.Where("sid=?", id).Limit(1).Find(&spots).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(spots) == 0 {
		return nil, cerr.NotFound(fmt.Errorf("spot %q is not found", id))
	}
	s := spots[0].Model()
	return &s, nil
}
