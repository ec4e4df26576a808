// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session loads the per-invocation context for CLI commands: the
// resolved configuration, the logger and a converter built from both.
package session

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/config"
	"github.com/dacolabs/schemamap/internal/convert"
	"github.com/dacolabs/schemamap/internal/logger"
	"go.uber.org/zap"
)

// ErrInvalidConfig indicates the config file exists but is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options selects how a session is loaded.
type Options struct {
	// ConfigPath is an explicit configuration file; empty means look it up.
	ConfigPath string
	// Getenv reads environment variables; nil disables the lookup.
	Getenv func(string) string
	// Dir is searched for schemamap.yaml; empty means the working directory.
	Dir string

	Verbosity int
	JSONLogs  bool
	// LogOutput receives log lines; nil means stderr.
	LogOutput io.Writer
}

// Context holds what every command needs.
type Context struct {
	Config *config.Config
	// ConfigPath is the file Config was read from, or "" for defaults.
	ConfigPath string
	Logger     *zap.Logger
	Converter  *convert.Converter
}

// Load resolves the configuration, builds the logger and converter, and
// returns a new context.Context with the session stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	return With(ctx, s), nil
}

// New builds a session Context without storing it.
func New(opts Options) (*Context, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current directory")
		}
		dir = cwd
	}

	cfg, path, err := config.Resolve(opts.ConfigPath, opts.Getenv, dir)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidConfig)
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidConfig)
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log := logger.New(out, logger.Options{Verbosity: opts.Verbosity, JSON: opts.JSONLogs})
	if path != "" {
		log.Debug("configuration loaded", zap.String(logger.FieldFile, path))
	}

	return &Context{
		Config:     cfg,
		ConfigPath: path,
		Logger:     log,
		Converter: convert.New(convert.Options{
			Timeout:       timeout,
			MaxInputBytes: cfg.MaxInputBytes,
			Logger:        log,
		}),
	}, nil
}

// With returns a copy of ctx carrying s.
func With(ctx context.Context, s *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}
