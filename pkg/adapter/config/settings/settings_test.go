// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parkwatch/pkg/adapter/config/settings"
)

func dur(d time.Duration) *settings.Duration {
	sd := settings.Duration(d)
	return &sd
}

func TestDurationMarshal(t *testing.T) {
	for _, tc := range []struct {
		d time.Duration
		s string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{time.Hour, "1h"},
		{time.Hour + 90*time.Second, "1h1m30s"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Hour + 3*time.Minute, "2h3m"},
	} {
		d, s := tc.d, tc.s
		got := dur(d).Marshal()
		require.NotNil(t, got)
		assert.Equal(t, s, *got, "marshalling %v", d)

		var back settings.Duration
		require.NoError(t, back.UnmarshalText([]byte(s)))
		assert.Equal(t, d, time.Duration(back))
	}
	var nilDur *settings.Duration
	assert.Nil(t, nilDur.Marshal())
	_, err := nilDur.MarshalText()
	assert.Error(t, err)
	assert.Error(t, new(settings.Duration).UnmarshalText([]byte("soon")))
}

func TestVerifyRange(t *testing.T) {
	v := dur(time.Second)
	err := settings.VerifyRange(&v, dur(5*time.Second), dur(time.Minute))
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, settings.Duration(time.Second), *err.Value)
	assert.Equal(t, settings.Duration(5*time.Second), *v)

	v = dur(time.Hour)
	err = settings.VerifyRange(&v, nil, dur(time.Minute))
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, settings.Duration(time.Minute), *v)

	v = nil
	assert.Nil(t, settings.VerifyRange(&v, dur(time.Second), nil))
	assert.Nil(t, v)

	err = settings.VerifyRange(&v, dur(time.Minute), dur(time.Second))
	require.NotNil(t, err)
	assert.True(t, err.InvalidRange)
}

func TestNil2Zero(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)

	tr := true
	b = &tr
	settings.Nil2Zero(&b)
	assert.True(t, *b, "non-nil values are kept")
}
