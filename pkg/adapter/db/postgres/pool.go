// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/parkwatch/pkg/core/log"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool is a database connection pool which is safe to be used
// concurrently. It embeds a *gorm.DB, so it may be used by GORM.
type Pool struct {
	*gorm.DB
}

// slogWriter passes GORM log lines to the default slog logger.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	log.Warn(
		context.Background(), "gorm",
		slog.String("detail", fmt.Sprintf(format, args...)),
	)
}

// NewPool connects to the url PostgreSQL database and returns the
// connection pool after testing one connection. GORM slow queries
// and errors are logged by the default slog logger.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
			// Set to false in order to log with replaced vars
			ParameterizedQueries: true,
		}),
	})
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is a function which uses one database connection.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler does nothing and may be used for testing the
// connectivity of a pool.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires one connection from the pool and passes it to the
// f handler. The connection is released when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of the pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
