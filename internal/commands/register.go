// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/schemamap/internal/prompts"
	"github.com/dacolabs/schemamap/internal/session"
	"github.com/spf13/cobra"
)

// interactive reports whether forms may be shown.
var interactive = prompts.Interactive

type rootOptions struct {
	configPath string
	verbose    int
	logJSON    bool
}

// NewRootCmd creates and returns the root command for the CLI. getenv is
// consulted for SCHEMAMAP_CONFIG.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "schemamap",
		Short: "Convert schema definitions between notations",
		Long: `Convert schema definitions between TypeScript, Zod, Go structs, Pydantic,
Java Lombok, Prisma and JSON Schema. Every conversion goes through JSON Schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return session.PreRunLoad(func() session.Options {
				return session.Options{
					ConfigPath: opts.configPath,
					Getenv:     getenv,
					Verbosity:  opts.verbose,
					JSONLogs:   opts.logJSON,
					LogOutput:  cmd.ErrOrStderr(),
				}
			})(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to schemamap.yaml (default: $SCHEMAMAP_CONFIG or ./schemamap.yaml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
