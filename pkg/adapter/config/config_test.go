// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parkwatch/pkg/adapter/config"
	"github.com/momeni/parkwatch/pkg/core/cerr"
)

const body = `
database:
    host: 127.0.0.1
    port: 5432
    name: pkweb
    pass-dir: /tmp/pkweb
`

func TestParseVersions(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		versions string
		ok       bool
	}{
		{"versions: {database: 1.0.0, config: 1.0.0}", true},
		{"versions: {database: 2.0.0, config: 1.0.0}", false},
		{"versions: {database: 1.0.0, config: 0.9.0}", false},
		{"versions: {database: 1.3.0, config: 1.0.0}", false},
	} {
		t.Run(tc.versions, func(t *testing.T) {
			c, err := config.Parse(ctx, []byte(body+tc.versions+"\n"))
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, "pkweb", c.Database.Name)
			} else {
				var msve *cerr.MismatchingSemVerError
				assert.ErrorAs(t, err, &msve)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	assert.Equal(t, config.DefaultPath, config.Path(""))
	t.Setenv(config.EnvConfigFile, "/etc/pkweb.yaml")
	assert.Equal(t, "/etc/pkweb.yaml", config.Path(""))
	assert.Equal(t, "pkweb.yaml", config.Path("pkweb.yaml"))
}

func TestLoadSampleConfig(t *testing.T) {
	path := filepath.Join("..", "..", "..", config.DefaultPath)
	_, err := os.Stat(path)
	require.NoError(t, err, "sample config is missing")
	c, err := config.Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, c.Comments)

	_, err = config.Load(context.Background(), path+".missing")
	assert.Error(t, err)
}
