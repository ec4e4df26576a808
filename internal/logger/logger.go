// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package logger builds the zap loggers used by the CLI and the conversion
// pipeline.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbosity is the -v count, see VerbosityToLevel.
	Verbosity int
	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool
}

// New returns a logger writing to w. The console encoder omits timestamps and
// callers so that CLI output stays calm; the JSON encoder keeps both for
// machine consumption.
func New(w io.Writer, opts Options) *zap.Logger {
	level := VerbosityToLevel(opts.Verbosity)

	var enc zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.NameKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// Component returns a named child logger tagged with the component field.
func Component(parent *zap.Logger, name string) *zap.Logger {
	if parent == nil {
		parent = zap.NewNop()
	}
	return parent.Named(name).With(zap.String(FieldComponent, name))
}
