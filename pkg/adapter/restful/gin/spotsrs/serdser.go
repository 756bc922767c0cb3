// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spotsrs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parkwatch/pkg/core/model"
)

// StrCoordinate is the optional user position as given in the query.
// Both of lat and lon must be given or omitted together.
type StrCoordinate struct {
	Lat string `form:"lat" binding:"required_with=Lon,omitempty,latitude"`
	Lon string `form:"lon" binding:"required_with=Lat,omitempty,longitude"`
}

// ToModel parses `sc` and returns nil if no position was given.
func (sc StrCoordinate) ToModel() (*model.Coordinate, error) {
	if sc.Lat == "" {
		return nil, nil
	}
	var c model.Coordinate
	var err error
	c.Lat, err = strconv.ParseFloat(sc.Lat, 64)
	if err != nil {
		return nil, err
	}
	c.Lon, err = strconv.ParseFloat(sc.Lon, 64)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type rawListSpotsReq struct {
	StrCoordinate
	MaxPrice          *float64 `form:"max_price" binding:"omitempty,gte=0"`
	MinTimeLimit      *int     `form:"min_time_limit" binding:"omitempty,gte=0"`
	MaxDistance       *float64 `form:"max_distance" binding:"omitempty,gte=0"`
	ShowOnlyAvailable *bool    `form:"show_only_available"`
	IncludePredicted  *bool    `form:"include_predicted"`
}

type listSpotsReq struct {
	Pos    *model.Coordinate
	Filter model.ParkingFilter
}

type getSpotReq struct {
	SpotID string
	Pos    *model.Coordinate
}

// DserListSpotsReq binds the query parameters of a listing request.
// Omitted filter parameters take their values from the default filter
// of the spots use case.
func (rs *resource) DserListSpotsReq(c *gin.Context) *listSpotsReq {
	req := &rawListSpotsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	pos, ok := dserPos(c, req.StrCoordinate)
	if !ok {
		return nil
	}
	f := rs.spots.Settings().DefaultFilter
	if req.MaxPrice != nil {
		f.MaxPrice = req.MaxPrice
	}
	if req.MinTimeLimit != nil {
		f.MinTimeLimit = req.MinTimeLimit
	}
	if req.MaxDistance != nil {
		f.MaxDistance = req.MaxDistance
	}
	if req.ShowOnlyAvailable != nil {
		f.ShowOnlyAvailable = *req.ShowOnlyAvailable
	}
	if req.IncludePredicted != nil {
		f.IncludePredicted = *req.IncludePredicted
	}
	return &listSpotsReq{Pos: pos, Filter: f}
}

// DserGetSpotReq binds the path and query parameters of a spot lookup
// request.
func (rs *resource) DserGetSpotReq(c *gin.Context) *getSpotReq {
	sc := &StrCoordinate{}
	if ok := serdser.Bind(c, sc, binding.Query); !ok {
		return nil
	}
	pos, ok := dserPos(c, *sc)
	if !ok {
		return nil
	}
	return &getSpotReq{SpotID: c.Param("sid"), Pos: pos}
}

func dserPos(c *gin.Context, sc StrCoordinate) (*model.Coordinate, bool) {
	pos, err := sc.ToModel()
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "lat/lon", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil, false
	}
	return pos, true
}

// RefreshResp summarizes a refreshed snapshot without its spots.
type RefreshResp struct {
	Snapshot    uuid.UUID `json:"snapshot"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Total       int       `json:"total"`
}

// SerRefreshResp creates the response of a refresh request.
func SerRefreshResp(s *model.Snapshot) *RefreshResp {
	return &RefreshResp{
		Snapshot:    s.ID,
		RefreshedAt: s.RefreshedAt,
		Total:       len(s.Spots),
	}
}
