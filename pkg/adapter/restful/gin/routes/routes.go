// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parkwatch/pkg/adapter/config/cfg1"
	"github.com/momeni/parkwatch/pkg/adapter/metrics/prom"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin/settingsrs"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin/spotsrs"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/momeni/parkwatch/pkg/core/usecase/spotsuc"
)

// Prefix is the path prefix of all versioned REST APIs.
const Prefix = "/api/pkweb/v1"

// Setup instantiates the spots use case based on the c configuration
// settings and registers its resources using the e gin-gonic engine.
// The p connections pool is passed to the use case instance, so it
// may acquire/release connections and transactions on demand. These
// connections/transactions will be passed to the repositories later
// in order to run relevant queries on them. If obs is not nil, it
// measures the use case and its metrics are served on /metrics.
//
// The returned use case should be Run by the caller in order to
// refresh spots periodically, and the returned closer must be called
// after the use case is not needed anymore.
func Setup(
	ctx context.Context,
	e *gin.Engine,
	p repo.Pool,
	c *cfg1.Config,
	obs *prom.Observer,
) (*spotsuc.UseCase, func() error, error) {
	uc, closer, err := c.NewSpotsUseCase(ctx, p, obs)
	if err != nil {
		return nil, nil, fmt.Errorf("creating spots use case: %w", err)
	}
	var h http.Handler
	if obs != nil {
		h = obs.Handler()
	}
	Register(e, uc, h)
	return uc, closer, nil
}

// Register instantiates a series of "resource" structs, from packages
// which are named like spotsrs, in order to adapt the spots use case
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The metrics handler is optional and is served on /metrics.
func Register(e *gin.Engine, spots *spotsuc.UseCase, metrics http.Handler) {
	r := e.Group(Prefix)
	settingsrs.Register(r, spots)
	spotsrs.Register(r, spots)
	if metrics != nil {
		e.GET("/metrics", gin.WrapH(metrics))
	}
}
