// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsuc

import (
	"cmp"
	"slices"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// Arrange computes the visible parking spots for a user. It annotates
// spots with their distance from pos (if pos is non-nil), filters them
// according to f, and ranks the filtered spots. The spots argument is
// not modified and the returned slice holds fresh copies, so Arrange
// may be called concurrently on a shared snapshot.
func Arrange(
	spots []model.ParkingSpot, pos *model.Coordinate, f model.ParkingFilter,
) []model.ParkingSpot {
	return Rank(Filter(Annotate(spots, pos), f, pos != nil))
}

// Annotate returns a copy of spots with their Distance field set to
// the distance from pos in kilometers. When pos is nil, the Distance
// of all copies is cleared.
func Annotate(
	spots []model.ParkingSpot, pos *model.Coordinate,
) []model.ParkingSpot {
	res := make([]model.ParkingSpot, len(spots))
	for i, s := range spots {
		s.Distance = nil
		if pos != nil {
			d := pos.DistanceTo(s.Coordinate)
			s.Distance = &d
		}
		res[i] = s
	}
	return res
}

// Filter applies BaseFilter with f and then, if f.IncludePredicted
// is true, re-adds the soon-available spots of the given spots using
// IncludeSoonAvailable. The hasPosition argument indicates if the user
// position is known, hence, if the f.MaxDistance may be applied.
func Filter(
	spots []model.ParkingSpot, f model.ParkingFilter, hasPosition bool,
) []model.ParkingSpot {
	res := BaseFilter(spots, f, hasPosition)
	if f.IncludePredicted {
		res = IncludeSoonAvailable(res, spots)
	}
	return res
}

// BaseFilter keeps spots which pass all active constraints of f.
// Missing price and time limit values never exclude a spot, while
// a missing distance excludes it once the distance constraint is
// active. The distance constraint is ignored when hasPosition is false.
func BaseFilter(
	spots []model.ParkingSpot, f model.ParkingFilter, hasPosition bool,
) []model.ParkingSpot {
	res := make([]model.ParkingSpot, 0, len(spots))
	for _, s := range spots {
		if f.ShowOnlyAvailable && !s.Available {
			continue
		}
		if f.MaxPrice != nil && s.Price != nil && *s.Price > *f.MaxPrice {
			continue
		}
		if f.MinTimeLimit != nil && s.TimeLimit != nil &&
			*s.TimeLimit < *f.MinTimeLimit {
			continue
		}
		if f.MaxDistance != nil && hasPosition &&
			(s.Distance == nil || *s.Distance > *f.MaxDistance) {
			continue
		}
		res = append(res, s)
	}
	return res
}

// IncludeSoonAvailable appends the soon-available spots of all (in
// their order) to filtered, unless a spot with the same ID is already
// present. The re-added spots are not checked against any constraint.
func IncludeSoonAvailable(
	filtered, all []model.ParkingSpot,
) []model.ParkingSpot {
	seen := make(map[string]struct{}, len(filtered))
	for _, s := range filtered {
		seen[s.ID] = struct{}{}
	}
	for _, s := range all {
		if !s.SoonAvailable() {
			continue
		}
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		filtered = append(filtered, s)
	}
	return filtered
}

// Rank returns a new slice holding spots in the Compare order.
// Spots which compare as equal keep their relative order.
func Rank(spots []model.ParkingSpot) []model.ParkingSpot {
	res := slices.Clone(spots)
	if res == nil {
		res = []model.ParkingSpot{}
	}
	slices.SortStableFunc(res, Compare)
	return res
}

// Compare returns a negative number if a should be shown before b,
// a positive number if b should be shown before a, and zero if they
// have the same rank. Available spots come first, then soon-available
// spots with sooner ones first (a missing InMinutes counts as zero).
// Remaining ties are broken by distance if both distances are known.
func Compare(a, b model.ParkingSpot) int {
	if a.Available != b.Available {
		if a.Available {
			return -1
		}
		return 1
	}
	if !a.Available {
		aw, bw := a.Prediction.WillBeAvailable, b.Prediction.WillBeAvailable
		if aw != bw {
			if aw {
				return -1
			}
			return 1
		}
		if aw {
			am, bm := minutes(a.Prediction), minutes(b.Prediction)
			// equal minutes fall through to the distance rule
			if c := cmp.Compare(am, bm); c != 0 {
				return c
			}
		}
	}
	if a.Distance != nil && b.Distance != nil {
		return cmp.Compare(*a.Distance, *b.Distance)
	}
	return 0
}

func minutes(p model.Prediction) int {
	if p.InMinutes == nil {
		return 0
	}
	return *p.InMinutes
}
