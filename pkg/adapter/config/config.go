// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the pkweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// These settings are versioned and maintained by sub-packages.
// However, the parsed and validated configurations should be passed
// to their ultimate components as a series of individual params (for
// the mandatory items) and a series of functional options (for
// the optional items), so they may be validated again by the relevant
// end-component such as a UseCase instance.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/parkwatch/pkg/adapter/config/cfg1"
	"github.com/momeni/parkwatch/pkg/adapter/config/vers"
	"github.com/momeni/parkwatch/pkg/adapter/db/postgres"
	"github.com/momeni/parkwatch/pkg/core/cerr"
)

// EnvConfigFile is the environment variable which may specify the
// configuration file path when it is not given as a flag.
const EnvConfigFile = "CONFIG_FILE"

// DefaultPath is the configuration file path which is used when
// neither a flag nor the CONFIG_FILE environment variable is given.
const DefaultPath = "configs/sample-config.yaml"

// Path returns the flagPath if it is not empty, otherwise, the value
// of the CONFIG_FILE environment variable, and at last the DefaultPath.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return DefaultPath
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format.
// The corresponding database schema version must also be compatible
// with the latest known database schema version.
func Load(ctx context.Context, path string) (*cfg1.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(ctx, data)
}

// Parse is like Load, but takes the configuration file contents.
func Parse(ctx context.Context, data []byte) (*cfg1.Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	vc := v.Versions
	switch {
	case !cfg1.Version.Compatible(vc.Config):
		return nil, fmt.Errorf(
			"unexpected config version: %w",
			&cerr.MismatchingSemVerError{cfg1.Version, vc.Config},
		)
	case !postgres.Version.Compatible(vc.Database):
		return nil, fmt.Errorf(
			"unexpected database schema version: %w",
			&cerr.MismatchingSemVerError{postgres.Version, vc.Database},
		)
	}
	c, err := cfg1.Load(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
