// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spotsuc contains the parking spots UseCase and its pure
// arrangement pipeline. The UseCase periodically replaces the stored
// parking spots with a fresh set (taken from a Source), and serves
// them to users after annotating them with their distance from the
// user position, filtering them by the user chosen constraints, and
// ranking them so the most useful spots are shown first.
// The pipeline functions (Annotate, Filter, Rank, and Arrange) keep
// no state and may be used independently.
package spotsuc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parkwatch/pkg/core/cerr"
	"github.com/momeni/parkwatch/pkg/core/log"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
)

// Source provides a fresh set of parking spots on every Fetch call.
// It may be a generator of mock data or a client of a data feed.
type Source interface {
	Fetch(ctx context.Context) ([]model.ParkingSpot, error)
}

// SnapshotCache keeps the latest snapshot close to the readers.
// Load returns a nil snapshot and a nil error on a cache miss.
// Invalidate removes the cached snapshot, so the next Load misses.
type SnapshotCache interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Store(ctx context.Context, s *model.Snapshot, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// Observer is notified about the refresh and arrangement operations,
// so they can be measured. The n argument of ObserveRefresh is the
// number of fetched spots, while in and out arguments of the
// ObserveArrange are the number of spots before and after filtering.
type Observer interface {
	ObserveRefresh(n int, d time.Duration, err error)
	ObserveArrange(in, out int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRefresh(int, time.Duration, error) {}

func (nopObserver) ObserveArrange(int, int, time.Duration) {}

// UseCase represents the parking spots use case. It holds a database
// connection pool, the spots repository instance (to be guided with
// the DB pool), a spots source, and the spots use case settings.
type UseCase struct {
	pool    repo.Pool
	spotsrp repo.Spots
	src     Source

	refreshInterval time.Duration
	defaultFilter   *model.ParkingFilter
	defaultLocation *model.Coordinate

	cache    SnapshotCache
	observer Observer
	now      func() time.Time

	refreshLock sync.Mutex // serializes Refresh calls
}

// New instantiates a parking spots use case.
// Required parameters are passed individually, so caller has to
// provision them. Optional parameters are passed as a series of
// functional options in order to facilitate their validation.
func New(
	p repo.Pool, r repo.Spots, src Source, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, spotsrp: r, src: src}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.refreshInterval == 0 {
		uc.refreshInterval = DefaultRefreshInterval
	}
	if uc.defaultFilter == nil {
		f := model.DefaultParkingFilter()
		uc.defaultFilter = &f
	}
	if uc.defaultLocation == nil {
		c := DefaultLocation
		uc.defaultLocation = &c
	}
	if uc.observer == nil {
		uc.observer = nopObserver{}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Refresh fetches a fresh set of parking spots from the source and
// replaces all stored spots with them as a new snapshot. Spots are
// validated before storage and a single invalid spot (or a repeated
// ID) rejects the whole set, keeping the previous snapshot intact.
// The new snapshot is also put in the cache (if any), but failing
// to do so is only logged.
func (uc *UseCase) Refresh(ctx context.Context) (
	snapshot *model.Snapshot, err error,
) {
	uc.refreshLock.Lock()
	defer uc.refreshLock.Unlock()
	start := time.Now()
	n := 0
	defer func() {
		uc.observer.ObserveRefresh(n, time.Since(start), err)
	}()
	spots, err := uc.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching spots: %w", err)
	}
	n = len(spots)
	if err = validateAll(spots); err != nil {
		return nil, fmt.Errorf("validating spots: %w", err)
	}
	s := &model.Snapshot{
		ID:          uuid.New(),
		RefreshedAt: uc.now().UTC(),
		Spots:       spots,
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return uc.spotsrp.Tx(tx).ReplaceAll(ctx, s)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("replacing spots: %w", err)
	}
	uc.storeInCache(ctx, s)
	log.Info(
		ctx, "parking spots are refreshed",
		log.Stringer("snapshot", s.ID), log.Elapsed("elapsed", start),
	)
	return s, nil
}

func validateAll(spots []model.ParkingSpot) error {
	ids := make(map[string]struct{}, len(spots))
	for i := range spots {
		if err := spots[i].Validate(); err != nil {
			return fmt.Errorf("spot #%d: %w", i, err)
		}
		if _, ok := ids[spots[i].ID]; ok {
			return fmt.Errorf("spot #%d: repeated id %q", i, spots[i].ID)
		}
		ids[spots[i].ID] = struct{}{}
	}
	return nil
}

// Run refreshes the parking spots immediately and then after each
// refresh interval until ctx is done. Failed refresh operations are
// logged and retried on the next tick. It returns the ctx error.
func (uc *UseCase) Run(ctx context.Context) error {
	t := time.NewTicker(uc.refreshInterval)
	defer t.Stop()
	for {
		if _, err := uc.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error(ctx, "refreshing parking spots", log.Err("err", err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// List returns the arranged parking spots of the current snapshot
// for a user at pos (which may be nil if the user position is not
// known) with the f filter. Counts of the returned list are computed
// for the arranged spots. If no snapshot is stored yet, a
// cerr.Unavailable error is returned.
func (uc *UseCase) List(
	ctx context.Context, pos *model.Coordinate, f model.ParkingFilter,
) (*model.SpotList, error) {
	s, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	spots := Arrange(s.Spots, pos, f)
	uc.observer.ObserveArrange(len(s.Spots), len(spots), time.Since(start))
	sl := &model.SpotList{
		Snapshot:    s.ID,
		RefreshedAt: s.RefreshedAt,
		Total:       len(spots),
		Spots:       spots,
	}
	for i := range spots {
		switch {
		case spots[i].Available:
			sl.Available++
		case spots[i].SoonAvailable():
			sl.SoonAvailable++
		}
	}
	return sl, nil
}

// Get returns the id parking spot of the current snapshot, having
// its distance from pos if pos is not nil. A missing spot causes
// a cerr.NotFound error.
func (uc *UseCase) Get(
	ctx context.Context, id string, pos *model.Coordinate,
) (*model.ParkingSpot, error) {
	var spot *model.ParkingSpot
	s, err := uc.cached(ctx)
	switch {
	case err != nil:
		return nil, err
	case s != nil:
		for i := range s.Spots {
			if s.Spots[i].ID == id {
				spot = &s.Spots[i]
				break
			}
		}
		if spot == nil {
			return nil, cerr.NotFound(
				fmt.Errorf("spot %q is not found", id),
			)
		}
	default:
		err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			spot, err = uc.spotsrp.Conn(c).Get(ctx, id)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	annotated := Annotate([]model.ParkingSpot{*spot}, pos)
	return &annotated[0], nil
}

// Settings returns the spots use case settings which should be
// visible to the users.
func (uc *UseCase) Settings() model.VisibleSettings {
	return model.VisibleSettings{
		RefreshInterval: uc.refreshInterval,
		DefaultFilter:   *uc.defaultFilter,
		DefaultLocation: *uc.defaultLocation,
	}
}

// snapshot returns the current snapshot, trying the cache first and
// falling back to the database on a cache miss.
func (uc *UseCase) snapshot(ctx context.Context) (*model.Snapshot, error) {
	s, err := uc.cached(ctx)
	if err != nil || s != nil {
		return s, err
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		s, err = uc.spotsrp.Conn(c).Load(ctx)
		return err
	})
	switch {
	case errors.Is(err, model.ErrNoSnapshot):
		return nil, cerr.Unavailable(err)
	case err != nil:
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	uc.storeInCache(ctx, s)
	return s, nil
}

// cached returns nil (with no error) if no cache is configured, the
// cache misses, or it fails. Cache failures are logged since the
// database may be used instead.
func (uc *UseCase) cached(ctx context.Context) (*model.Snapshot, error) {
	if uc.cache == nil {
		return nil, nil
	}
	s, err := uc.cache.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn(ctx, "loading cached snapshot", log.Err("err", err))
		return nil, nil
	}
	return s, nil
}

// storeInCache puts `s` in the cache. If that fails, the cached
// snapshot is removed, so readers fall back to the database instead
// of serving a replaced snapshot.
func (uc *UseCase) storeInCache(ctx context.Context, s *model.Snapshot) {
	if uc.cache == nil {
		return
	}
	err := uc.cache.Store(ctx, s, uc.cacheTTL())
	if err == nil {
		return
	}
	log.Warn(ctx, "caching snapshot", log.Err("err", err))
	if err = uc.cache.Invalidate(ctx); err != nil {
		log.Error(
			ctx, "invalidating cached snapshot",
			log.Stringer("snapshot", s.ID), log.Err("err", err),
		)
	}
}

// cacheTTL keeps a cached snapshot for two refresh intervals, so one
// failed refresh does not empty the cache.
func (uc *UseCase) cacheTTL() time.Duration {
	return 2 * uc.refreshInterval
}
