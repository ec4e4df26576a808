// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"cmp"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/prompts"
	"github.com/dacolabs/schemamap/internal/session"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	format string
	input  string
	strict bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that input looks like a schema in the given format",
		Long: `Check that input looks like a schema in the given format.

The check is structural and cheap. With --strict the input is also parsed and
the resulting JSON Schema is checked against the draft.`,
		Example: `  # Validate a Prisma file
  schemamap validate --format prisma -i schema.prisma

  # Parse and lint as well
  schemamap validate --format zod -i user.ts --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format (default: source from schemamap.yaml)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", `Input file ("-" or omitted for stdin)`)
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Parse the input and lint the resulting JSON Schema")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	s, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	id := cmp.Or(opts.format, s.Config.Source)
	if id == "" && interactive() {
		if err := prompts.RunValidateForm(&id); err != nil {
			return err
		}
	}
	if id == "" {
		return errors.New("--format is required")
	}
	format, err := translate.ParseFormat(id)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, format, opts.input, false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if v := s.Converter.Validate(format, text); !v.Valid {
		prompts.PrintInvalid(out, v.Error)
		return errors.Newf("invalid %s input", format.Label())
	}

	if opts.strict {
		schema, err := s.Converter.Parse(cmd.Context(), format, text)
		if err != nil {
			prompts.PrintInvalid(out, err.Error())
			return errors.Newf("invalid %s input", format.Label())
		}
		if ref := danglingRef(schema); ref != "" {
			msg := "Unresolved reference " + ref
			prompts.PrintInvalid(out, msg)
			return errors.Newf("strict check failed: %s", msg)
		}
		data, err := jschema.Encode(schema)
		if err != nil {
			return err
		}
		if err := jschema.Lint(data); err != nil {
			prompts.PrintInvalid(out, err.Error())
			return errors.Wrap(err, "strict check failed")
		}
	}

	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Format", Value: format.Label()},
	}, fmt.Sprintf("Valid %s input", format.Label()))
	return nil
}

// danglingRef returns the first local $ref of schema that names no
// definition, or "".
func danglingRef(schema *jschema.Schema) string {
	resolve := jschema.DefinitionResolver(schema)
	for s := range jschema.Traverse(schema, nil) {
		if s.Ref != "" && !jschema.IsFileRef(s.Ref) && resolve(s.Ref) == nil {
			return s.Ref
		}
	}
	return ""
}
