// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0", "0.1.0-alpha.1").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// Build describes the running binary.
type Build struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Go      string `json:"go" yaml:"go"`
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	// "go install module@version" records the module version.
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" && len(setting.Value) >= 7 {
				Commit = setting.Value[:7]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// Get returns the build description.
func Get() Build {
	return Build{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
}

// Info returns formatted version information.
func Info() string {
	b := Get()
	return fmt.Sprintf("schemamap version %s (commit: %s, built: %s, go: %s)", b.Version, b.Commit, b.Date, b.Go)
}

// Short returns just the version string.
func Short() string {
	return Version
}
