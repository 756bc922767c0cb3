// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// DefaultRefreshInterval is used when WithRefreshInterval is not given.
const DefaultRefreshInterval = 30 * time.Second

// DefaultLocation is used when WithDefaultLocation is not given.
// It points to Mumbai.
var DefaultLocation = model.Coordinate{Lat: 19.076, Lon: 72.8777}

// Option is a functional option for the spots use case.
type Option func(uc *UseCase) error

// WithRefreshInterval option configures a spots UseCase instance in
// order to refresh all parking spots after each interval when its
// Run method is called. This option may be passed to the New function.
func WithRefreshInterval(interval time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(interval); d <= 0 {
			return fmt.Errorf("refresh interval (%d) is not positive", d)
		}
		if uc.refreshInterval != 0 {
			return errors.New("refresh interval is already configured")
		}
		uc.refreshInterval = interval
		return nil
	}
}

// WithDefaultFilter option configures the filter which is reported
// by the Settings method, so clients can use it for omitted (or reset)
// filter constraints.
func WithDefaultFilter(f model.ParkingFilter) Option {
	return func(uc *UseCase) error {
		if uc.defaultFilter != nil {
			return errors.New("default filter is already configured")
		}
		uc.defaultFilter = &f
		return nil
	}
}

// WithDefaultLocation option configures the position which clients
// should use when the user geographical location is not available.
func WithDefaultLocation(c model.Coordinate) Option {
	return func(uc *UseCase) error {
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			return fmt.Errorf("invalid default location: %v", c)
		}
		if uc.defaultLocation != nil {
			return errors.New("default location is already configured")
		}
		uc.defaultLocation = &c
		return nil
	}
}

// WithCache option makes the use case to keep the latest snapshot
// in the given cache and read it from there before the database.
func WithCache(c SnapshotCache) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("cache is nil")
		}
		uc.cache = c
		return nil
	}
}

// WithObserver option registers an Observer for measuring the refresh
// and arrangement operations.
func WithObserver(o Observer) Option {
	return func(uc *UseCase) error {
		if o == nil {
			return errors.New("observer is nil")
		}
		uc.observer = o
		return nil
	}
}

// WithClock option replaces the time.Now function which is used for
// stamping the refreshed snapshots.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		uc.now = now
		return nil
	}
}
