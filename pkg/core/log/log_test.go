// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/parkwatch/pkg/core/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for s, expected := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		l, err := log.ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, expected, l, s)
	}
	_, err := log.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestJSONLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := log.NewLogger(buf, slog.LevelInfo, "json")
	require.NoError(t, err)
	orig := slog.Default()
	slog.SetDefault(l)
	defer slog.SetDefault(orig)

	ctx := context.Background()
	log.Debug(ctx, "hidden")
	log.Warn(ctx, "refresh failed", log.Err("err", errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "refresh failed", rec["msg"])
	assert.Equal(t, "boom", rec["err"])
	src, ok := rec["source"].(map[string]any)
	require.True(t, ok, "source must be recorded")
	assert.Contains(t, src["file"], "log_test.go")
}

func TestNewLoggerRejectsUnknownFormat(t *testing.T) {
	_, err := log.NewLogger(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
