// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mocksrc provides a parking spots source which generates
// random spots around a center point. It stands in for a real parking
// occupancy feed in the development and demo deployments.
package mocksrc

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// These constants are the default Source settings.
const (
	DefaultCount        = 50
	DefaultRangeDegrees = 0.02
)

// DefaultCenter is the default center of the generated spots (Mumbai).
var DefaultCenter = model.Coordinate{Lat: 19.076, Lon: 72.8777}

var (
	streetNames = []string{
		"M.G. Road", "S.V. Road", "Linking Road",
		"Hill Road", "J.P. Road", "Juhu Road",
	}
	streetTypes = []string{"", "Lane", "Marg", "Nagar", "Colony"}
	areas       = []string{
		"Andheri", "Bandra", "Juhu", "Worli", "Colaba", "Dadar",
	}
)

// Source generates a fresh set of random parking spots on each Fetch.
// About 60% of spots are available, half of the unavailable spots are
// predicted to become available in 5 to 34 minutes, and about 70% of
// spots have a known price (20 to 119) and time limit (30 to 149).
// Spot IDs are stable (spot-0, spot-1, ...) across fetches, so the
// same ID refers to the same logical spot with a new random state.
type Source struct {
	count  int
	center model.Coordinate
	rng    float64 // range in degrees
	now    func() time.Time

	mu   sync.Mutex
	rand *rand.Rand
}

// Option is a functional option for the mock Source.
type Option func(s *Source) error

// New creates a mock Source. By default, it generates DefaultCount
// spots within a DefaultRangeDegrees box around DefaultCenter using
// a randomly seeded generator.
func New(opts ...Option) (*Source, error) {
	s := &Source{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if s.count == 0 {
		s.count = DefaultCount
	}
	if s.rng == 0 {
		s.rng = DefaultRangeDegrees
	}
	if s.center == (model.Coordinate{}) {
		s.center = DefaultCenter
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// WithCount sets the number of generated spots per Fetch.
func WithCount(n int) Option {
	return func(s *Source) error {
		if n <= 0 {
			return fmt.Errorf("count (%d) is not positive", n)
		}
		s.count = n
		return nil
	}
}

// WithSeed makes the generated spots reproducible. Consecutive Fetch
// calls still produce different spots, but the sequence of fetched
// sets only depends on the seed.
func WithSeed(seed uint64) Option {
	return func(s *Source) error {
		s.rand = rand.New(rand.NewPCG(seed, seed))
		return nil
	}
}

// WithCenter sets the center of the generated spots box.
func WithCenter(c model.Coordinate) Option {
	return func(s *Source) error {
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			return fmt.Errorf("invalid center: %v", c)
		}
		s.center = c
		return nil
	}
}

// WithRangeDegrees sets the width and height of the generated spots
// box in degrees.
func WithRangeDegrees(r float64) Option {
	return func(s *Source) error {
		if r <= 0 || r > 1 {
			return fmt.Errorf("range (%v) must be in (0, 1]", r)
		}
		s.rng = r
		return nil
	}
}

// WithClock replaces the time.Now function which stamps the spots
// LastUpdated field.
func WithClock(now func() time.Time) Option {
	return func(s *Source) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		s.now = now
		return nil
	}
}

// Fetch generates a new set of spots. It never fails unless ctx is
// already done.
func (s *Source) Fetch(ctx context.Context) ([]model.ParkingSpot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	spots := make([]model.ParkingSpot, 0, s.count)
	for i := 0; i < s.count; i++ {
		spots = append(spots, s.spot(i, now))
	}
	return spots, nil
}

func (s *Source) spot(i int, now time.Time) model.ParkingSpot {
	r := s.rand
	spot := model.ParkingSpot{
		ID: fmt.Sprintf("spot-%d", i),
		Coordinate: model.Coordinate{
			Lat: s.center.Lat + (r.Float64()-0.5)*s.rng,
			Lon: s.center.Lon + (r.Float64()-0.5)*s.rng,
		},
		Available:   r.Float64() > 0.4,
		LastUpdated: now,
	}
	spot.Prediction.WillBeAvailable = !spot.Available && r.Float64() > 0.5
	if r.Float64() > 0.3 {
		p := float64(r.IntN(100) + 20)
		spot.Price = &p
	}
	if r.Float64() > 0.3 {
		tl := r.IntN(120) + 30
		spot.TimeLimit = &tl
	}
	if spot.Prediction.WillBeAvailable {
		m := r.IntN(30) + 5
		spot.Prediction.InMinutes = &m
	}
	spot.Address = strings.TrimSuffix(fmt.Sprintf(
		"%d, %s, %s, %s",
		r.IntN(200)+1,
		streetNames[r.IntN(len(streetNames))],
		areas[r.IntN(len(areas))],
		streetTypes[r.IntN(len(streetTypes))],
	), ", ")
	return spot
}
