// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spotsrs realizes the parking spots resource, allowing the
// spots listing, lookup, and refreshing REST APIs to be accepted and
// delegated to the spots use cases respectively.
package spotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parkwatch/pkg/core/usecase/spotsuc"
)

type resource struct {
	spots *spotsuc.UseCase
}

// Register instantiates a resource adapting the spots use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pkweb/v1/spots
//     in order to list the filtered and ranked spots,
//  2. GET request to /api/pkweb/v1/spots/:sid
//     in order to fetch the selected spot,
//  3. POST request to /api/pkweb/v1/spots/refresh
//     in order to replace all spots without waiting for the timer.
func Register(r *gin.RouterGroup, spots *spotsuc.UseCase) {
	rs := &resource{spots: spots}
	r.GET("spots", rs.ListSpots)
	r.POST("spots/refresh", rs.RefreshSpots)
	r.GET("spots/:sid", rs.GetSpot)
}

func (rs *resource) ListSpots(c *gin.Context) {
	req := rs.DserListSpotsReq(c)
	if req == nil {
		return
	}
	sl, err := rs.spots.List(c, req.Pos, req.Filter)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sl)
}

func (rs *resource) GetSpot(c *gin.Context) {
	req := rs.DserGetSpotReq(c)
	if req == nil {
		return
	}
	spot, err := rs.spots.Get(c, req.SpotID, req.Pos)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

func (rs *resource) RefreshSpots(c *gin.Context) {
	s, err := rs.spots.Refresh(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerRefreshResp(s))
}
