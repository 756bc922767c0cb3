// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsuc_test

import (
	"testing"

	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/usecase/spotsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func ids(spots []model.ParkingSpot) []string {
	res := make([]string, 0, len(spots))
	for _, s := range spots {
		res = append(res, s.ID)
	}
	return res
}

func soon(id string, minutes *int) model.ParkingSpot {
	return model.ParkingSpot{
		ID: id,
		Prediction: model.Prediction{
			WillBeAvailable: true,
			InMinutes:       minutes,
		},
	}
}

// scenarioSpots carries precomputed distances, as if a user position
// had already been taken into account.
func scenarioSpots() []model.ParkingSpot {
	return []model.ParkingSpot{
		{
			ID: "a",
			Prediction: model.Prediction{
				WillBeAvailable: true, InMinutes: ptr(10),
			},
			Distance: ptr(1.0),
		},
		{ID: "b", Available: true, Distance: ptr(5.0)},
		{ID: "c", Distance: ptr(0.5)},
	}
}

func TestArrangeScenarios(t *testing.T) {
	in := scenarioSpots()
	out := spotsuc.Rank(spotsuc.Filter(
		in, model.DefaultParkingFilter(), false,
	))
	assert.Equal(t, []string{"b", "a", "c"}, ids(out))

	out = spotsuc.Rank(spotsuc.Filter(in, model.ParkingFilter{
		ShowOnlyAvailable: true,
	}, false))
	assert.Equal(t, []string{"b"}, ids(out))

	assert.Equal(t, scenarioSpots(), in, "input must not be modified")
}

func TestAnnotate(t *testing.T) {
	pos := model.Coordinate{Lat: 19.076, Lon: 72.8777}
	in := []model.ParkingSpot{
		{ID: "here", Coordinate: pos},
		{ID: "north", Coordinate: model.Coordinate{Lat: 20.076, Lon: 72.8777}},
	}
	out := spotsuc.Annotate(in, &pos)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Distance)
	assert.Equal(t, 0.0, *out[0].Distance)
	require.NotNil(t, out[1].Distance)
	assert.InDelta(t, 111.195, *out[1].Distance, 0.01)
	assert.Nil(t, in[0].Distance, "input must not be modified")

	out = spotsuc.Annotate(out, nil)
	for _, s := range out {
		assert.Nil(t, s.Distance, "spot %s", s.ID)
	}
	assert.Empty(t, spotsuc.Annotate(nil, &pos))
}

func TestBaseFilter(t *testing.T) {
	spots := []model.ParkingSpot{
		{ID: "cheap", Available: true, Price: ptr(20.0), TimeLimit: ptr(30)},
		{ID: "pricey", Available: true, Price: ptr(100.0), TimeLimit: ptr(120)},
		{ID: "unknown", Available: true},
		{ID: "taken", Price: ptr(20.0), Distance: ptr(0.1)},
		{ID: "far", Available: true, Distance: ptr(3.0)},
		{ID: "near", Available: true, Distance: ptr(0.5)},
	}
	for _, tc := range []struct {
		name        string
		filter      model.ParkingFilter
		hasPosition bool
		expected    []string
	}{
		{
			name:     "no constraints",
			expected: []string{"cheap", "pricey", "unknown", "taken", "far", "near"},
		},
		{
			name:     "only available",
			filter:   model.ParkingFilter{ShowOnlyAvailable: true},
			expected: []string{"cheap", "pricey", "unknown", "far", "near"},
		},
		{
			name:     "inclusive max price keeps unknown prices",
			filter:   model.ParkingFilter{MaxPrice: ptr(20.0)},
			expected: []string{"cheap", "unknown", "taken", "far", "near"},
		},
		{
			name:     "inclusive min time limit keeps unknown limits",
			filter:   model.ParkingFilter{MinTimeLimit: ptr(120)},
			expected: []string{"pricey", "unknown", "taken", "far", "near"},
		},
		{
			name:        "max distance drops unknown distances",
			filter:      model.ParkingFilter{MaxDistance: ptr(3.0)},
			hasPosition: true,
			expected:    []string{"taken", "far", "near"},
		},
		{
			name:     "max distance without position",
			filter:   model.ParkingFilter{MaxDistance: ptr(0.0)},
			expected: []string{"cheap", "pricey", "unknown", "taken", "far", "near"},
		},
		{
			name: "conjunction",
			filter: model.ParkingFilter{
				ShowOnlyAvailable: true,
				MaxDistance:       ptr(1.0),
			},
			hasPosition: true,
			expected:    []string{"near"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := spotsuc.BaseFilter(spots, tc.filter, tc.hasPosition)
			assert.Equal(t, tc.expected, ids(out))
		})
	}
	out := spotsuc.BaseFilter(nil, model.DefaultParkingFilter(), true)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBaseFilterMonotonicity(t *testing.T) {
	var spots []model.ParkingSpot
	for i := 0; i < 40; i++ {
		s := model.ParkingSpot{
			ID:        string(rune('A' + i)),
			Available: i%3 != 0,
			Distance:  ptr(float64(i%7) / 2),
		}
		if i%4 != 0 {
			s.Price = ptr(float64(10 * (i % 9)))
		}
		if i%5 != 0 {
			s.TimeLimit = ptr(15 * (i % 8))
		}
		spots = append(spots, s)
	}
	count := func(f model.ParkingFilter) int {
		return len(spotsuc.BaseFilter(spots, f, true))
	}
	prev := count(model.ParkingFilter{MaxPrice: ptr(1000.0)})
	for p := 90.0; p >= 0; p -= 10 {
		n := count(model.ParkingFilter{MaxPrice: ptr(p)})
		assert.LessOrEqual(t, n, prev, "max price %v", p)
		prev = n
	}
	prev = count(model.ParkingFilter{MinTimeLimit: ptr(0)})
	for m := 15; m <= 120; m += 15 {
		n := count(model.ParkingFilter{MinTimeLimit: ptr(m)})
		assert.LessOrEqual(t, n, prev, "min time limit %d", m)
		prev = n
	}
	prev = count(model.ParkingFilter{MaxDistance: ptr(10.0)})
	for d := 3.0; d >= 0; d -= 0.5 {
		n := count(model.ParkingFilter{MaxDistance: ptr(d)})
		assert.LessOrEqual(t, n, prev, "max distance %v", d)
		prev = n
	}
}

func TestIncludeSoonAvailable(t *testing.T) {
	spots := []model.ParkingSpot{
		{ID: "free", Available: true, Price: ptr(10.0)},
		soon("soon-cheap", ptr(5)),
		{ID: "taken"},
		soon("soon-pricey", nil),
	}
	spots[1].Price = ptr(10.0)
	spots[3].Price = ptr(500.0)

	f := model.ParkingFilter{
		ShowOnlyAvailable: true,
		IncludePredicted:  true,
	}
	out := spotsuc.Filter(spots, f, false)
	assert.Equal(t, []string{"free", "soon-cheap", "soon-pricey"}, ids(out))

	f = model.ParkingFilter{MaxPrice: ptr(50.0), IncludePredicted: true}
	out = spotsuc.Filter(spots, f, false)
	assert.Equal(
		t, []string{"free", "soon-cheap", "taken", "soon-pricey"}, ids(out),
		"soon-available spots are not duplicated and skip price checks",
	)

	f.IncludePredicted = false
	out = spotsuc.Filter(spots, f, false)
	assert.Equal(t, []string{"free", "soon-cheap", "taken"}, ids(out))

	out = spotsuc.IncludeSoonAvailable(nil, nil)
	assert.Empty(t, out)
}

func TestFilterDefaultKeepsEverything(t *testing.T) {
	spots := []model.ParkingSpot{
		{ID: "x", Available: true}, soon("y", nil), {ID: "z"},
	}
	out := spotsuc.Filter(spots, model.DefaultParkingFilter(), true)
	assert.Equal(t, []string{"x", "y", "z"}, ids(out))
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     model.ParkingSpot
		expected int
	}{
		{
			name:     "available first",
			a:        model.ParkingSpot{Available: true, Distance: ptr(9.0)},
			b:        soon("", ptr(0)),
			expected: -1,
		},
		{
			name:     "soon-available before unavailable",
			a:        model.ParkingSpot{Distance: ptr(0.1)},
			b:        soon("", ptr(30)),
			expected: 1,
		},
		{
			name:     "sooner first",
			a:        soon("", ptr(5)),
			b:        soon("", ptr(10)),
			expected: -1,
		},
		{
			name:     "missing minutes count as zero",
			a:        soon("", ptr(1)),
			b:        soon("", nil),
			expected: 1,
		},
		{
			name: "equal minutes fall through to distance",
			a: func() model.ParkingSpot {
				s := soon("", ptr(5))
				s.Distance = ptr(2.0)
				return s
			}(),
			b: func() model.ParkingSpot {
				s := soon("", ptr(5))
				s.Distance = ptr(1.0)
				return s
			}(),
			expected: 1,
		},
		{
			name: "missing and zero minutes fall through to distance",
			a: func() model.ParkingSpot {
				s := soon("", nil)
				s.Distance = ptr(0.5)
				return s
			}(),
			b: func() model.ParkingSpot {
				s := soon("", ptr(0))
				s.Distance = ptr(3.0)
				return s
			}(),
			expected: -1,
		},
		{
			name:     "available by distance",
			a:        model.ParkingSpot{Available: true, Distance: ptr(1.0)},
			b:        model.ParkingSpot{Available: true, Distance: ptr(2.0)},
			expected: -1,
		},
		{
			name:     "one distance is unknown",
			a:        model.ParkingSpot{Available: true},
			b:        model.ParkingSpot{Available: true, Distance: ptr(2.0)},
			expected: 0,
		},
		{
			name: "available ignores predictions",
			a: model.ParkingSpot{
				Available: true, Prediction: model.Prediction{
					WillBeAvailable: true, InMinutes: ptr(50),
				},
			},
			b:        model.ParkingSpot{Available: true},
			expected: 0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, spotsuc.Compare(tc.a, tc.b))
			assert.Equal(t, -tc.expected, spotsuc.Compare(tc.b, tc.a))
		})
	}
}

func TestRankIsStableAndIdempotent(t *testing.T) {
	spots := []model.ParkingSpot{
		{ID: "u1"},
		{ID: "a1", Available: true},
		soon("s1", ptr(7)),
		{ID: "u2"},
		{ID: "a2", Available: true},
		soon("s2", ptr(7)),
		{ID: "a3", Available: true, Distance: ptr(1.0)},
		{ID: "a4", Available: true, Distance: ptr(0.5)},
	}
	ranked := spotsuc.Rank(spots)
	assert.Equal(
		t,
		[]string{"a1", "a2", "a4", "a3", "s1", "s2", "u1", "u2"},
		ids(ranked),
	)
	assert.Equal(t, ranked, spotsuc.Rank(ranked))
	assert.Equal(t, "u1", spots[0].ID, "input must not be reordered")
	assert.NotNil(t, spotsuc.Rank(nil))
}

func TestArrange(t *testing.T) {
	user := model.Coordinate{Lat: 19.076, Lon: 72.8777}
	spots := []model.ParkingSpot{
		{
			ID: "far", Available: true,
			Coordinate: model.Coordinate{Lat: 19.086, Lon: 72.8777},
		},
		{
			ID: "near", Available: true,
			Coordinate: model.Coordinate{Lat: 19.077, Lon: 72.8777},
		},
		{
			ID:         "soon-far",
			Coordinate: model.Coordinate{Lat: 19.176, Lon: 72.8777},
			Prediction: model.Prediction{WillBeAvailable: true},
		},
	}
	f := model.ParkingFilter{MaxDistance: ptr(0.5), IncludePredicted: true}
	out := spotsuc.Arrange(spots, &user, f)
	assert.Equal(t, []string{"near", "soon-far"}, ids(out))
	for _, s := range out {
		assert.NotNil(t, s.Distance, "spot %s", s.ID)
	}

	out = spotsuc.Arrange(spots, nil, f)
	assert.Equal(t, []string{"far", "near", "soon-far"}, ids(out))
	for _, s := range out {
		assert.Nil(t, s.Distance, "spot %s", s.ID)
	}
}
