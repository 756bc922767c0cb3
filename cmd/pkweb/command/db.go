// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/parkwatch/pkg/core/usecase/initdbuc"
	"github.com/spf13/cobra"
)

// credsRenewalMessage describes how the database passwords are renewed
// by the init-dev and init-prod commands.
const credsRenewalMessage = `The admin and normal roles passwords are renewed and written in the
passwords file (as identified by the pass-dir setting). A temporary
file is used for the new passwords and it is moved over the main
passwords file after the database transaction is committed, so an
interrupted run may be repeated safely.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data
for the database schema version which is specified in the configuration
file. The database connection information are also read from the config
file. Tables are filled with one snapshot of mock parking spots which
are generated using the mock settings of the spots use case.
` + credsRenewalMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data
for the database schema version which is specified in the configuration
file. The database connection information are also read from the config
file. No changes will be made to the config file itself and created
tables are left empty until the first refresh of the web server.
` + credsRenewalMessage + `

If database schema version X.Y.Z is asked in the config file, relevant
tables will be created in the pkwebX schema. An existing pkwebX schema
will be dropped with all of its contents.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	src, err := c.Usecases.Spots.Mock.NewSource()
	if err != nil {
		return fmt.Errorf("creating mock spots source: %w", err)
	}
	if err = initdbuc.New(c, src).InitDev(ctx); err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func initProd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err = initdbuc.New(c, nil).InitProd(ctx); err != nil {
		return fmt.Errorf("initializing DB with prod data: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
}
