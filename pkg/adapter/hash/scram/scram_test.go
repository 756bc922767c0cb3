// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"regexp"
	"testing"

	"github.com/momeni/parkwatch/pkg/adapter/hash/scram"
	scrami "github.com/momeni/parkwatch/pkg/core/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ scrami.Hasher = scram.SHA256()

func TestHashFormat(t *testing.T) {
	for _, m := range []*scram.Mechanism{scram.SHA1(), scram.SHA256()} {
		t.Run(m.Name(), func(t *testing.T) {
			h, err := m.Hash("pencil", "", 4096)
			require.NoError(t, err)
			re := regexp.MustCompile(
				`^` + regexp.QuoteMeta(m.Name()) +
					`\$4096:[A-Za-z0-9+/=]+\$[A-Za-z0-9+/=]+:[A-Za-z0-9+/=]+$`,
			)
			assert.Regexp(t, re, h)

			h2, err := m.Hash("pencil", "", 4096)
			require.NoError(t, err)
			assert.NotEqual(t, h, h2, "random salts must differ")
		})
	}
}

func TestHashWithFixedSalt(t *testing.T) {
	salt := "W22ZaJ0SNY7soEsUEjb6gQ=="
	m := scram.SHA256()
	h1, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Contains(t, h1, "$4096:"+salt+"$")

	h3, err := m.Hash("pen", salt, 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashRejectsInvalidInput(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", 4096)
	assert.Error(t, err)
	_, err = m.Hash("pencil", "", 1000)
	assert.Error(t, err)
	_, err = m.Hash("pencil", "not base64!", 4096)
	assert.Error(t, err)
}
