// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package logger

import "go.uber.org/zap/zapcore"

// Verbosity levels for the -v flag count.
const (
	VerbosityUser  = 0 // No flags: results, warnings and errors
	VerbosityInfo  = 1 // -v: + progress
	VerbosityDebug = 2 // -vv: + per-conversion timing and sizes
)

// VerbosityToLevel maps a -v count to a zap level.
//
//	0 (none)  -> WarnLevel
//	1 (-v)    -> InfoLevel
//	2+ (-vv)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for a verbosity level.
func LevelName(verbosity int) string {
	switch {
	case verbosity <= VerbosityUser:
		return "User"
	case verbosity == VerbosityInfo:
		return "Info (-v)"
	default:
		return "Debug (-vv)"
	}
}
