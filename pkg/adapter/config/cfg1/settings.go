// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"errors"
	"fmt"

	"github.com/momeni/parkwatch/pkg/adapter/source/mocksrc"
	"github.com/momeni/parkwatch/pkg/core/model"
)

// Filter contains the default filter settings which are used for
// the omitted query parameters of the spots listing requests.
// The bound fields are pointers because nil is a meaningful value
// for them (no constraint), while the boolean flags are pointers in
// order to detect that they are not configured and keep their
// model.DefaultParkingFilter values.
type Filter struct {
	MaxPrice          *float64 `yaml:"max-price,omitempty"`
	MinTimeLimit      *int     `yaml:"min-time-limit,omitempty"`
	MaxDistance       *float64 `yaml:"max-distance,omitempty"`
	ShowOnlyAvailable *bool    `yaml:"show-only-available,omitempty"`
	IncludePredicted  *bool    `yaml:"include-predicted,omitempty"`
}

// Model converts the `f` settings to a model.ParkingFilter.
func (f Filter) Model() model.ParkingFilter {
	mf := model.DefaultParkingFilter()
	mf.MaxPrice = f.MaxPrice
	mf.MinTimeLimit = f.MinTimeLimit
	mf.MaxDistance = f.MaxDistance
	if f.ShowOnlyAvailable != nil {
		mf.ShowOnlyAvailable = *f.ShowOnlyAvailable
	}
	if f.IncludePredicted != nil {
		mf.IncludePredicted = *f.IncludePredicted
	}
	return mf
}

func (f Filter) validate() error {
	switch {
	case f.MaxPrice != nil && *f.MaxPrice < 0:
		return fmt.Errorf("negative max-price: %v", *f.MaxPrice)
	case f.MinTimeLimit != nil && *f.MinTimeLimit < 0:
		return fmt.Errorf("negative min-time-limit: %d", *f.MinTimeLimit)
	case f.MaxDistance != nil && *f.MaxDistance < 0:
		return fmt.Errorf("negative max-distance: %v", *f.MaxDistance)
	}
	return nil
}

// Location is a geographic point in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Model converts the `l` settings to a model.Coordinate.
func (l Location) Model() model.Coordinate {
	return model.Coordinate{Lat: l.Latitude, Lon: l.Longitude}
}

func (l Location) validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %v", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %v", l.Longitude)
	}
	return nil
}

// Mock contains the settings of the random spots generator which
// stands in for a real parking occupancy feed. Nil fields take the
// mocksrc package defaults.
type Mock struct {
	Count        *int      `yaml:",omitempty"`
	Seed         *uint64   `yaml:",omitempty"` // nil means a random seed
	Center       *Location `yaml:",omitempty"`
	RangeDegrees *float64  `yaml:"range-degrees,omitempty"`
}

// NewSource creates a mock spots source based on the `m` settings.
func (m Mock) NewSource() (*mocksrc.Source, error) {
	opts := make([]mocksrc.Option, 0, 4)
	if m.Count != nil {
		opts = append(opts, mocksrc.WithCount(*m.Count))
	}
	if m.Seed != nil {
		opts = append(opts, mocksrc.WithSeed(*m.Seed))
	}
	if m.Center != nil {
		opts = append(opts, mocksrc.WithCenter(m.Center.Model()))
	}
	if m.RangeDegrees != nil {
		opts = append(opts, mocksrc.WithRangeDegrees(*m.RangeDegrees))
	}
	return mocksrc.New(opts...)
}

func (m Mock) validate() error {
	if m.Count != nil && *m.Count <= 0 {
		return errors.New("count must be positive")
	}
	if m.Center != nil {
		if err := m.Center.validate(); err != nil {
			return fmt.Errorf("center: %w", err)
		}
	}
	if r := m.RangeDegrees; r != nil && (*r <= 0 || *r > 1) {
		return fmt.Errorf("range-degrees (%v) must be in (0, 1]", *r)
	}
	return nil
}
