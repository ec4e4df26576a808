// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/prompts"
	"github.com/dacolabs/schemamap/internal/session"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	from        string
	to          string
	input       string
	output      string
	dir         string
	all         bool
	force       bool
	resolveRefs bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a schema from one format to another",
		Long: `Convert a schema from one format to another.

Missing formats are taken from schemamap.yaml, or prompted for when running in
a terminal. The input is read from --input, or from stdin when it is "-" or
omitted outside a terminal.`,
		Example: `  # Interactive mode
  schemamap convert

  # Prisma to Pydantic
  schemamap convert --from prisma --to pydantic -i schema.prisma -o models.py

  # From stdin to stdout
  cat user.ts | schemamap convert --from typescript --to zod

  # Every format at once
  schemamap convert --from go-struct --all -i user.go -d schemas`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "Source format")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target format")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", `Input file ("-" for stdin)`)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "schemas", "Output directory for --all")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate every format")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing output files")
	cmd.Flags().BoolVar(&opts.resolveRefs, "resolve-refs", false, "Inline external file $refs of a JSON Schema input")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions) error {
	s, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	if opts.all && opts.to != "" {
		return errors.New("--all and --to are mutually exclusive")
	}

	from := cmp.Or(opts.from, s.Config.Source)
	to := opts.to
	if !opts.all {
		to = cmp.Or(to, s.Config.Target)
	}
	input := opts.input

	if interactive() {
		if err := prompts.RunConvertForm(&from, &to, &input, opts.all); err != nil {
			return err
		}
	}

	if from == "" {
		return errors.New("--from is required")
	}
	source, err := translate.ParseFormat(from)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, source, input, opts.resolveRefs)
	if err != nil {
		return err
	}

	if opts.all {
		return convertAll(cmd, s, source, text, opts)
	}

	if to == "" {
		return errors.New("--to is required")
	}
	target, err := translate.ParseFormat(to)
	if err != nil {
		return err
	}

	res := s.Converter.Convert(cmd.Context(), source, target, text)
	if res.Err != nil {
		return res.Err
	}

	if opts.output == "" || opts.output == "-" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	}
	if err := writeFile(opts.output, res.Output, opts.force); err != nil {
		return err
	}
	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: target.Label(), Value: opts.output},
	}, "")
	return nil
}

func convertAll(cmd *cobra.Command, s *session.Context, source translate.Format, text string, opts *convertOptions) error {
	dir := opts.dir
	if dir == "" && interactive() {
		if err := prompts.RunOutputDirForm(&dir); err != nil {
			return err
		}
	}
	if dir == "" {
		return errors.New("--dir is required with --all")
	}

	outputs, err := s.Converter.ConvertAll(cmd.Context(), source, text)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	fields := make([]prompts.ResultField, 0, len(outputs))
	failed := 0
	for _, o := range outputs {
		// Named by format id so that the two ".ts" targets do not collide.
		path := filepath.Join(dir, o.Format.String()+o.Format.Extension())
		err := o.Result.Err
		if err == nil {
			err = writeFile(path, o.Result.Output, opts.force)
		}
		if err != nil {
			failed++
			fields = append(fields, prompts.ResultField{Label: o.Format.Label(), Value: err.Error(), Failed: true})
			continue
		}
		fields = append(fields, prompts.ResultField{Label: o.Format.Label(), Value: path})
	}

	msg := ""
	if failed == 0 {
		msg = fmt.Sprintf("Generated %d formats from %s", len(outputs), source.Label())
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, msg)

	if failed > 0 {
		return errors.Newf("failed to generate %d format(s)", failed)
	}
	return nil
}

func writeFile(path, content string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		if !interactive() {
			return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite")
		}
		ok, err := prompts.ConfirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Newf("%s already exists", path)
		}
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
