// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type formatsOptions struct {
	output string
}

type formatInfo struct {
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label" yaml:"label"`
	Extension string `json:"extension" yaml:"extension"`
	Notes     string `json:"notes" yaml:"notes"`
}

func newFormatsCmd() *cobra.Command {
	opts := &formatsOptions{}

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported formats",
		Long:  `List the supported formats with their identifiers, file extensions and the subset of each notation that is understood.`,
		Example: `  # List formats in table format
  schemamap formats

  # List formats as JSON
  schemamap formats -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func runFormats(out io.Writer, opts *formatsOptions) error {
	formats := translate.Formats()
	infos := make([]formatInfo, len(formats))
	for i, f := range formats {
		infos[i] = formatInfo{ID: f.String(), Label: f.Label(), Extension: f.Extension(), Notes: f.Notes()}
	}

	switch opts.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return enc.Encode(infos)
	default:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tLABEL\tEXTENSION\tNOTES")
		for _, f := range infos {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.Label, f.Extension, f.Notes)
		}
		return w.Flush()
	}
}
