// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides an in-memory repo.Pool and repo.Spots implementation,
// so use cases and RESTful resources can be tested without a running
// PostgreSQL server. Changes which are made in a transaction become
// visible only after the transaction handler returns with no error.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/momeni/parkwatch/pkg/core/cerr"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
)

// ErrNoSQL is returned by Exec and Query methods because this package
// does not interpret SQL statements.
var ErrNoSQL = errors.New("memrepo does not support SQL statements")

// Pool is an in-memory repo.Pool. Its zero value is ready to use.
type Pool struct {
	mu        sync.Mutex
	snapshot  *model.Snapshot
	conns     int // number of Conn calls, for assertions
	failNext  error
	committed int
}

// Conn calls handler with a fresh connection, unless FailNext was
// called, which makes this call fail with the given error instead.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	p.mu.Lock()
	p.conns++
	err := p.failNext
	p.failNext = nil
	p.mu.Unlock()
	if err != nil {
		return err
	}
	return handler(ctx, &conn{pool: p})
}

// Close is a no-op since Pool holds no connections.
func (p *Pool) Close() error {
	return nil
}

// FailNext makes the next Conn call return err.
func (p *Pool) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = err
}

// Conns returns the number of Conn calls so far.
func (p *Pool) Conns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conns
}

// Commits returns the number of committed transactions so far.
func (p *Pool) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.committed
}

func (p *Pool) load() *model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

type conn struct {
	pool *Pool
}

func (c *conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrNoSQL
}

func (c *conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrNoSQL
}

func (c *conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	tx := &tx{pool: c.pool}
	if err := handler(ctx, tx); err != nil {
		return err
	}
	if tx.staged != nil {
		c.pool.mu.Lock()
		c.pool.snapshot = tx.staged
		c.pool.committed++
		c.pool.mu.Unlock()
	}
	return nil
}

func (c *conn) IsConn() {
}

type tx struct {
	pool   *Pool
	staged *model.Snapshot
}

func (tx *tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrNoSQL
}

func (tx *tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrNoSQL
}

func (tx *tx) IsTx() {
}

// Spots is an in-memory repo.Spots which keeps its snapshot in the
// Pool that the wrapped connections and transactions belong to.
type Spots struct{}

// Conn wraps a connection of a memrepo Pool.
func (Spots) Conn(c repo.Conn) repo.SpotsConnQueryer {
	return spotsQueryer{pool: c.(*conn).pool}
}

// Tx wraps a transaction of a memrepo Pool.
func (Spots) Tx(t repo.Tx) repo.SpotsTxQueryer {
	tt := t.(*tx)
	return spotsQueryer{pool: tt.pool, tx: tt}
}

type spotsQueryer struct {
	pool *Pool
	tx   *tx
}

func (q spotsQueryer) current() *model.Snapshot {
	if q.tx != nil && q.tx.staged != nil {
		return q.tx.staged
	}
	return q.pool.load()
}

func (q spotsQueryer) Load(context.Context) (*model.Snapshot, error) {
	s := q.current()
	if s == nil {
		return nil, model.ErrNoSnapshot
	}
	cp := *s
	cp.Spots = slices.Clone(s.Spots)
	return &cp, nil
}

func (q spotsQueryer) Get(
	_ context.Context, id string,
) (*model.ParkingSpot, error) {
	s := q.current()
	if s != nil {
		for _, spot := range s.Spots {
			if spot.ID == id {
				return &spot, nil
			}
		}
	}
	return nil, cerr.NotFound(fmt.Errorf("spot %q is not found", id))
}

func (q spotsQueryer) ReplaceAll(
	_ context.Context, s *model.Snapshot,
) error {
	cp := *s
	cp.Spots = slices.Clone(s.Spots)
	q.tx.staged = &cp
	return nil
}
