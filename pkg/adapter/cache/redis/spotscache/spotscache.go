// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spotscache keeps the latest parking spots snapshot in a
// Redis key, so replicas can serve the listing requests without
// loading the whole snapshot from the database each time.
package spotscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// DefaultKey is the Redis key which holds the encoded snapshot when
// no other key is configured.
const DefaultKey = "pkweb:snapshot"

// Cache stores snapshots as JSON documents in a single Redis key.
type Cache struct {
	rdb redis.UniversalClient
	key string
}

// New wraps the rdb Redis client as a snapshot Cache which keeps
// the snapshot in the key key. An empty key means DefaultKey.
func New(rdb redis.UniversalClient, key string) *Cache {
	if key == "" {
		key = DefaultKey
	}
	return &Cache{rdb: rdb, key: key}
}

// Dial creates a Redis client for the given address and database
// number and verifies it by a PING command.
func Dial(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping (%s): %w", addr, err)
	}
	return rdb, nil
}

// Load returns the cached snapshot. A missing key is reported as a
// nil snapshot and nil error, so callers may fall back to the database.
func (c *Cache) Load(ctx context.Context) (*model.Snapshot, error) {
	b, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("redis GET %q: %w", c.key, err)
	}
	return Decode(b)
}

// Store replaces the cached snapshot. The ttl must be positive, so
// a stale snapshot expires if refreshing stops.
func (c *Cache) Store(
	ctx context.Context, s *model.Snapshot, ttl time.Duration,
) error {
	if ttl <= 0 {
		return fmt.Errorf("non-positive ttl: %v", ttl)
	}
	b, err := Encode(s)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %q: %w", c.key, err)
	}
	return nil
}

// Invalidate removes the cached snapshot, if any.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis DEL %q: %w", c.key, err)
	}
	return nil
}

// Encode serializes a snapshot for the cache. Computed distances are
// not part of a snapshot, so they are dropped.
func Encode(s *model.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil snapshot")
	}
	cp := *s
	cp.Spots = make([]model.ParkingSpot, len(s.Spots))
	for i, spot := range s.Spots {
		spot.Distance = nil
		cp.Spots[i] = spot
	}
	b, err := json.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return b, nil
}

// Decode deserializes a cached snapshot and validates its spots.
func Decode(b []byte) (*model.Snapshot, error) {
	s := &model.Snapshot{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	for _, spot := range s.Spots {
		if err := spot.Validate(); err != nil {
			return nil, fmt.Errorf("cached spot %q: %w", spot.ID, err)
		}
	}
	return s, nil
}
