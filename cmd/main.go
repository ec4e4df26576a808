// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package main is the entry point for the schemamap CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/cmd/internal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := internal.Run(ctx, os.Getenv)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
