// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// ParkingFilter contains the user-chosen constraints which narrow the
// visible parking spots. It is passed by value and replaced as a whole
// whenever the user changes some constraint.
//
// The nil bounds impose no constraint. The MaxDistance is inclusive
// and measured in kilometers; it is ignored when no user position is
// known. IncludePredicted re-adds the soon-available spots even if the
// other constraints have excluded them.
type ParkingFilter struct {
	MaxPrice          *float64 `json:"max_price"`
	MinTimeLimit      *int     `json:"min_time_limit"`
	MaxDistance       *float64 `json:"max_distance"`
	ShowOnlyAvailable bool     `json:"show_only_available"`
	IncludePredicted  bool     `json:"include_predicted"`
}

// DefaultParkingFilter returns the filter which is used when a user
// has not chosen any constraint (or has reset them). It includes the
// soon-available spots and imposes no other constraint.
func DefaultParkingFilter() ParkingFilter {
	return ParkingFilter{IncludePredicted: true}
}
