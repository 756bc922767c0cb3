// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// VisibleSettings contains settings which are visible by end-users.
// They are reported by the settings resource, so a client can learn
// how often spots are refreshed, which filter is used when it resets
// its constraints, and which location it may use when the geolocation
// capability fails to report the user position.
//
// These settings are immutable during one execution and are taken from
// the configuration file (and possibly overridden by environment
// variables) while instantiating the spots use case.
type VisibleSettings struct {
	// RefreshInterval is the period of replacing all parking spots.
	RefreshInterval time.Duration `json:"refresh_interval"`

	// DefaultFilter is used for omitted filter constraints.
	DefaultFilter ParkingFilter `json:"default_filter"`

	// DefaultLocation is the fallback user position.
	DefaultLocation Coordinate `json:"default_location"`
}
