// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	s := FromCommand(cmd)
	if s == nil {
		return nil, errors.New("session not loaded")
	}
	return s, nil
}

// PreRunLoad returns a PersistentPreRunE function that loads the session
// with the options opts returns and stores it in the command's context.
func PreRunLoad(opts func() Options) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, err := Load(cmd.Context(), opts())
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
}
