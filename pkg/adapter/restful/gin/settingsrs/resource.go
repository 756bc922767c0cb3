// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settingsrs realizes the settings resource, allowing the
// visible settings to be fetched by the dashboard, so it can reset
// its filter controls or fall back to the default location when the
// user position is not available.
package settingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parkwatch/pkg/adapter/config/settings"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/usecase/spotsuc"
)

type resource struct {
	spots *spotsuc.UseCase
}

// Register instantiates a resource adapting the spots use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pkweb/v1/settings
//     in order to fetch the current visible settings.
func Register(r *gin.RouterGroup, spots *spotsuc.UseCase) {
	rs := &resource{spots: spots}
	r.GET("settings", rs.FetchSettings)
}

func (rs *resource) FetchSettings(c *gin.Context) {
	c.JSON(http.StatusOK, SerSettingsResp(rs.spots.Settings()))
}

// SettingsResp reports the visible settings. The refresh interval is
// serialized as a human-readable duration, like 30s or 1m30s.
type SettingsResp struct {
	RefreshInterval *settings.Duration  `json:"refresh_interval"`
	DefaultFilter   model.ParkingFilter `json:"default_filter"`
	DefaultLocation model.Coordinate    `json:"default_location"`
}

// SerSettingsResp creates a SettingsResp from the `vs` settings.
func SerSettingsResp(vs model.VisibleSettings) *SettingsResp {
	d := settings.Duration(vs.RefreshInterval)
	return &SettingsResp{
		RefreshInterval: &d,
		DefaultFilter:   vs.DefaultFilter,
		DefaultLocation: vs.DefaultLocation,
	}
}
