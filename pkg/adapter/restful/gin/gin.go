// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so other
// packages may create an engine with the slog based request logging
// and panic recovery middlewares without importing them directly.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New creates a gin engine without any default middleware and then
// registers the given middlewares.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs each request using `l`.
func Logger(l *slog.Logger) HandlerFunc {
	return logger.New(l)
}

// Recovery returns a middleware which recovers from panics, logs them
// using `l`, and responds with the 500 status code.
func Recovery(l *slog.Logger) HandlerFunc {
	return recovery.New(l)
}
