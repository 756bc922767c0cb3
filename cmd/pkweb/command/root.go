// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the parkwatch
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself (with the periodic
// refresh of parking spots), the "db" sub-command can be used for
// initialization of the database, and the "spots" sub-command queries
// the stored spots from the command line.
//
//	./pkweb [-c /path/of/main/config.yaml]           # start web server
//	./pkweb db init-dev [-c /path/of/main/config.yaml]
//	./pkweb db init-prod [-c /path/of/main/config.yaml]
//	./pkweb spots query [--lat 19.07 --lon 72.87] [--max-price 50]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/parkwatch/pkg/adapter/config"
	"github.com/momeni/parkwatch/pkg/adapter/config/cfg1"
	"github.com/momeni/parkwatch/pkg/adapter/restful/gin/routes"
	"github.com/momeni/parkwatch/pkg/core/log"
	"github.com/momeni/parkwatch/pkg/core/repo"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the graceful shutdown of the web server.
const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "pkweb",
	Short: "A parking spots availability web service",
	Long: `A parking spots availability web service which periodically
refreshes a snapshot of parking spots (with their occupancy, pricing,
and availability predictions), stores it in a PostgreSQL database,
and serves it through a REST API.
Listed spots are annotated with their distance from the user position,
filtered by the user constraints (price, time limit, distance, and
availability), and ranked so that available spots come first, then
the soon-available ones (sooner first), and then the rest, where the
nearer spots win the ties.
An optional Redis server may cache the latest snapshot and Prometheus
metrics may be scraped from the /metrics endpoint.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	obs := c.Metrics.NewObserver()
	e := c.Gin.NewEngine(slog.Default())
	uc, closer, err := routes.Setup(ctx, e, p, c, obs)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	defer closer()

	refreshed := make(chan error, 1)
	go func() {
		refreshed <- uc.Run(ctx)
	}()
	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}
	served := make(chan error, 1)
	go func() {
		log.Info(ctx, "serving REST API", slog.String("address", srv.Addr))
		served <- srv.ListenAndServe()
	}()

	select {
	case err = <-served:
		stop()
		<-refreshed
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case err = <-refreshed:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "refresh loop failed", log.Err("error", err))
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// loadConfig loads the configuration file and installs its logger
// as the default slog logger, so the rest of the program may log
// using the log package.
func loadConfig(ctx context.Context) (*cfg1.Config, error) {
	c, err := config.Load(ctx, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	l, err := c.Logging.NewLogger(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(l)
	log.Debug(ctx, "configs are loaded", slog.Any("config", c.Marshal()))
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// non-zero if the command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	cfgPath = config.Path(cfgPath)
}
