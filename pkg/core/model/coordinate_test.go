// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	for _, tc := range []struct {
		name      string
		a, b      model.Coordinate
		expected  float64
		tolerance float64
	}{
		{
			name:      "same location",
			a:         model.Coordinate{Lat: 19.076, Lon: 72.8777},
			b:         model.Coordinate{Lat: 19.076, Lon: 72.8777},
			expected:  0,
			tolerance: 0,
		},
		{
			name:      "new york to london",
			a:         model.Coordinate{Lat: 40.7128, Lon: -74.0060},
			b:         model.Coordinate{Lat: 51.5074, Lon: -0.1278},
			expected:  5570,
			tolerance: 10,
		},
		{
			name:      "sydney to tokyo",
			a:         model.Coordinate{Lat: -33.8688, Lon: 151.2093},
			b:         model.Coordinate{Lat: 35.6762, Lon: 139.6503},
			expected:  7823,
			tolerance: 10,
		},
		{
			name:      "one degree of latitude",
			a:         model.Coordinate{Lat: 0, Lon: 0},
			b:         model.Coordinate{Lat: 1, Lon: 0},
			expected:  111.195,
			tolerance: 0.01,
		},
		{
			name:      "antipodes",
			a:         model.Coordinate{Lat: 0, Lon: 0},
			b:         model.Coordinate{Lat: 0, Lon: 180},
			expected:  20015.087,
			tolerance: 0.01,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := model.Distance(tc.a, tc.b)
			assert.InDelta(t, tc.expected, d, tc.tolerance)
			assert.Equal(t, d, model.Distance(tc.b, tc.a), "asymmetric")
			assert.Equal(t, d, tc.a.DistanceTo(tc.b))
		})
	}
}

func TestParkingSpotValidate(t *testing.T) {
	five, minusOne := 5, -1
	price, negPrice := 20.0, -0.5
	for _, tc := range []struct {
		name string
		spot model.ParkingSpot
		ok   bool
	}{
		{"minimal", model.ParkingSpot{ID: "a"}, true},
		{"no id", model.ParkingSpot{}, false},
		{
			name: "soon available",
			spot: model.ParkingSpot{ID: "a", Price: &price, Prediction: model.Prediction{
				WillBeAvailable: true, InMinutes: &five,
			}},
			ok: true,
		},
		{
			name: "minutes without prediction",
			spot: model.ParkingSpot{ID: "a", Prediction: model.Prediction{
				InMinutes: &five,
			}},
		},
		{"negative price", model.ParkingSpot{ID: "a", Price: &negPrice}, false},
		{"negative limit", model.ParkingSpot{ID: "a", TimeLimit: &minusOne}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spot.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
