// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInconsistentPrediction indicates that a prediction reports the
// number of minutes until a spot becomes available, while it does not
// claim that the spot will become available at all.
var ErrInconsistentPrediction = errors.New(
	"in-minutes is set while will-be-available is false",
)

// ErrNoSnapshot indicates that no parking spots snapshot is stored
// yet, hence, there is nothing to be listed. It goes away after the
// first successful refresh.
var ErrNoSnapshot = errors.New("no parking spots snapshot is available")

// ParkingSpot models a single parking location with its occupancy and
// pricing metadata. Spots are immutable once constructed and the whole
// set of spots is replaced on each refresh cycle.
//
// Optional attributes are kept as pointers, so a nil value means that
// the attribute is unknown. The Distance is not part of the raw input
// and is computed (in kilometers) only when a user position is known.
type ParkingSpot struct {
	ID string `json:"id"`
	Coordinate
	Available   bool       `json:"available"`
	Price       *float64   `json:"price"`      // currency units per hour
	TimeLimit   *int       `json:"time_limit"` // minutes
	Prediction  Prediction `json:"prediction"`
	LastUpdated time.Time  `json:"last_updated"`
	Address     string     `json:"address"`
	Distance    *float64   `json:"distance,omitempty"`
}

// Prediction is a forecast of whether and when an unavailable spot
// becomes available. The InMinutes is only meaningful (and may only be
// set) when WillBeAvailable is true.
type Prediction struct {
	WillBeAvailable bool `json:"will_be_available"`
	InMinutes       *int `json:"in_minutes"`
}

// SoonAvailable reports if `s` is currently occupied, but is predicted
// to become available soon.
func (s *ParkingSpot) SoonAvailable() bool {
	return !s.Available && s.Prediction.WillBeAvailable
}

// Validate returns nil if `s` satisfies the ParkingSpot invariants.
// Ranges of coordinates are not checked since they are the data
// source responsibility.
func (s *ParkingSpot) Validate() error {
	switch {
	case s.ID == "":
		return errors.New("spot id is empty")
	case s.Prediction.InMinutes != nil && !s.Prediction.WillBeAvailable:
		return ErrInconsistentPrediction
	case s.Price != nil && *s.Price < 0:
		return fmt.Errorf("negative price: %v", *s.Price)
	case s.TimeLimit != nil && *s.TimeLimit < 0:
		return fmt.Errorf("negative time limit: %d", *s.TimeLimit)
	case s.Prediction.InMinutes != nil && *s.Prediction.InMinutes < 0:
		return fmt.Errorf(
			"negative in-minutes: %d", *s.Prediction.InMinutes,
		)
	}
	return nil
}

// Snapshot is the set of parking spots which was produced by one
// refresh cycle. The ID is renewed on each refresh, so clients may
// detect that the listed spots are replaced.
type Snapshot struct {
	ID          uuid.UUID     `json:"id"`
	RefreshedAt time.Time     `json:"refreshed_at"`
	Spots       []ParkingSpot `json:"spots"`
}

// SpotList is the result of listing spots around a user position.
// Spots are filtered and ordered and the counters describe them, so
// a dashboard can summarize what is visible with its current filter.
type SpotList struct {
	Snapshot      uuid.UUID     `json:"snapshot"`
	RefreshedAt   time.Time     `json:"refreshed_at"`
	Total         int           `json:"total"`
	Available     int           `json:"available"`
	SoonAvailable int           `json:"soon_available"`
	Spots         []ParkingSpot `json:"spots"`
}
