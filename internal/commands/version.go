// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/dacolabs/schemamap/internal/version"
	"github.com/spf13/cobra"
)

type versionOptions struct {
	short  bool
	output string
}

func newVersionCmd() *cobra.Command {
	opts := &versionOptions{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the schemamap version",
		Example: `  # Full build information
  schemamap version

  # Version number only
  schemamap version --short

  # Build information as JSON
  schemamap version -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case opts.short:
				_, _ = fmt.Fprintln(out, version.Short())
			case opts.output == "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(version.Get())
			default:
				_, _ = fmt.Fprintln(out, version.Info())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.short, "short", false, "Print only the version number")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json)")
	return cmd
}
