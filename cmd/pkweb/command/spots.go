// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/parkwatch/pkg/core/model"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/spf13/cobra"
)

var spotsCmd = &cobra.Command{
	Use:   "spots",
	Short: "Parking spots actions",
}

var query struct {
	lat, lon          float64
	maxPrice          float64
	minTimeLimit      int
	maxDistance       float64
	showOnlyAvailable bool
	includePredicted  bool
	refresh           bool
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List the stored parking spots as JSON",
	Long: `List the stored parking spots as JSON, exactly like the
GET spots REST API. The lat and lon flags must be passed together and
omitted filter flags take their values from the default filter of the
configuration file. The --refresh flag fetches and stores a fresh
snapshot of spots before listing them.`,
	RunE: querySpots,
	Args: cobra.NoArgs,
}

func querySpots(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("lat") != flags.Changed("lon") {
		return errors.New("lat and lon flags must be passed together")
	}
	if query.maxPrice < 0 || query.minTimeLimit < 0 ||
		query.maxDistance < 0 {
		return errors.New("filter bounds must not be negative")
	}
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, closer, err := c.NewSpotsUseCase(ctx, p, nil)
	if err != nil {
		return err
	}
	defer closer()
	if query.refresh {
		if _, err = uc.Refresh(ctx); err != nil {
			return fmt.Errorf("refreshing spots: %w", err)
		}
	}

	var pos *model.Coordinate
	if flags.Changed("lat") {
		if query.lat < -90 || query.lat > 90 ||
			query.lon < -180 || query.lon > 180 {
			return fmt.Errorf(
				"invalid position: (%v, %v)", query.lat, query.lon,
			)
		}
		pos = &model.Coordinate{Lat: query.lat, Lon: query.lon}
	}
	f := uc.Settings().DefaultFilter
	if flags.Changed("max-price") {
		f.MaxPrice = &query.maxPrice
	}
	if flags.Changed("min-time-limit") {
		f.MinTimeLimit = &query.minTimeLimit
	}
	if flags.Changed("max-distance") {
		f.MaxDistance = &query.maxDistance
	}
	if flags.Changed("show-only-available") {
		f.ShowOnlyAvailable = query.showOnlyAvailable
	}
	if flags.Changed("include-predicted") {
		f.IncludePredicted = query.includePredicted
	}
	sl, err := uc.List(ctx, pos, f)
	if err != nil {
		return fmt.Errorf("listing spots: %w", err)
	}
	b, err := json.MarshalIndent(sl, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling spots: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func init() {
	rootCmd.AddCommand(spotsCmd)
	spotsCmd.AddCommand(queryCmd)
	fs := queryCmd.Flags()
	fs.Float64Var(&query.lat, "lat", 0, "user latitude")
	fs.Float64Var(&query.lon, "lon", 0, "user longitude")
	fs.Float64Var(&query.maxPrice, "max-price", 0, "maximum price")
	fs.IntVar(
		&query.minTimeLimit, "min-time-limit", 0,
		"minimum time limit (minutes)",
	)
	fs.Float64Var(
		&query.maxDistance, "max-distance", 0, "maximum distance (km)",
	)
	fs.BoolVar(
		&query.showOnlyAvailable, "show-only-available", false,
		"exclude the occupied spots",
	)
	fs.BoolVar(
		&query.includePredicted, "include-predicted", false,
		"include the soon-available spots regardless of other bounds",
	)
	fs.BoolVar(
		&query.refresh, "refresh", false, "refresh spots before listing",
	)
}
