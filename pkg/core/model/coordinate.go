// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import "math"

// EarthRadiusKm is the mean radius of the Earth which is used by the
// haversine formula in order to compute great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinate represents a geographical location with a latitude and
// longitude in decimal degrees (WGS-84). It is embedded by ParkingSpot
// and is mapped to the lat and lon columns by the spots repository.
type Coordinate struct {
	Lat float64 `json:"latitude"`  // latitude of the geo-location
	Lon float64 `json:"longitude"` // longitude of the geo-location
}

// DistanceTo returns the great-circle distance between `c` and `d`
// coordinates in kilometers. See the Distance function.
func (c Coordinate) DistanceTo(d Coordinate) float64 {
	return Distance(c, d)
}

// Distance computes the great-circle distance between `a` and `b`
// points using the haversine formula and returns it in kilometers.
// Latitudes and longitudes are not validated, so out of range values
// produce an unspecified (but finite) result. The result is symmetric
// and it is zero when both points are identical.
func Distance(a, b Coordinate) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
