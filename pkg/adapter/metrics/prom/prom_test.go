// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package prom_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parkwatch/pkg/adapter/metrics/prom"
)

func TestObserveRefresh(t *testing.T) {
	o := prom.New()
	o.ObserveRefresh(50, 20*time.Millisecond, nil)
	o.ObserveRefresh(0, time.Millisecond, errors.New("fetch failed"))
	o.ObserveRefresh(40, 10*time.Millisecond, nil)

	expected := `
# HELP pkweb_refreshes_total Number of spots refresh attempts by result.
# TYPE pkweb_refreshes_total counter
pkweb_refreshes_total{result="error"} 1
pkweb_refreshes_total{result="ok"} 2
# HELP pkweb_snapshot_spots Number of spots in the latest stored snapshot.
# TYPE pkweb_snapshot_spots gauge
pkweb_snapshot_spots 40
`
	err := testutil.GatherAndCompare(
		o.Registry(), strings.NewReader(expected),
		"pkweb_refreshes_total", "pkweb_snapshot_spots",
	)
	assert.NoError(t, err)
	n, err := testutil.GatherAndCount(
		o.Registry(), "pkweb_refresh_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestObserveArrange(t *testing.T) {
	o := prom.New()
	o.ObserveArrange(10, 4, time.Microsecond)
	o.ObserveArrange(0, 0, time.Microsecond)

	expected := `
# HELP pkweb_arranges_total Number of filter and rank pipeline runs.
# TYPE pkweb_arranges_total counter
pkweb_arranges_total 2
`
	err := testutil.GatherAndCompare(
		o.Registry(), strings.NewReader(expected), "pkweb_arranges_total",
	)
	assert.NoError(t, err)
}

func TestHandler(t *testing.T) {
	o := prom.New()
	o.ObserveArrange(4, 4, time.Microsecond)
	srv := httptest.NewServer(o.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "pkweb_arranges_total 1")
	assert.Contains(t, string(b), "go_goroutines")
}
