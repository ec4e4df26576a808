// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
		name      string
	}{
		{-1, zapcore.WarnLevel, "User"},
		{0, zapcore.WarnLevel, "User"},
		{1, zapcore.InfoLevel, "Info (-v)"},
		{2, zapcore.DebugLevel, "Debug (-vv)"},
		{5, zapcore.DebugLevel, "Debug (-vv)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
			assert.Equal(t, tt.name, LevelName(tt.verbosity))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, Options{Verbosity: VerbosityDebug, JSON: true}), "convert")

	log.Debug("conversion finished", zap.String(FieldSource, "prisma"), zap.Int(FieldSize, 42))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "conversion finished", entry["msg"])
	assert.Equal(t, "convert", entry[FieldComponent])
	assert.Equal(t, "prisma", entry[FieldSource])
	assert.EqualValues(t, 42, entry[FieldSize])
}

func TestNew_ConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{})

	log.Info("hidden")
	log.Warn("shown", zap.String(FieldTarget, "zod"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "zod")
}

func TestComponent_NilParent(t *testing.T) {
	assert.NotPanics(t, func() {
		Component(nil, "x").Info("nothing")
	})
}
