// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/dacolabs/schemamap/internal/translate"
)

// FormatSelect returns a select field listing every supported format by label.
func FormatSelect(title string, value *string) *huh.Select[string] {
	formats := translate.Formats()
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f.Label(), f.String())
	}
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

// RunConvertForm prompts for whatever convert still lacks: the source
// format, the target format unless every format is generated, and the
// input file when none was given. Fields already set are skipped.
func RunConvertForm(source, target, input *string, all bool) error {
	needSource, needTarget, needInput := *source == "", *target == "" && !all, *input == ""
	if !needSource && !needTarget && !needInput {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			FormatSelect("Source format", source),
		).WithHideFunc(func() bool { return !needSource }),
		huh.NewGroup(
			FormatSelect("Target format", target),
		).WithHideFunc(func() bool { return !needTarget }),
		huh.NewGroup(
			huh.NewInput().
				Title("Input file").
				Placeholder("e.g., schema.prisma").
				Validate(fileValidator).
				Value(input),
		).WithHideFunc(func() bool { return !needInput }),
	).WithTheme(Theme()).Run()
}

// RunOutputDirForm prompts for the directory that receives every generated
// format.
func RunOutputDirForm(dir *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("schemas").
				Validate(requiredValidator("output directory")).
				Value(dir),
		),
	).WithTheme(Theme()).Run()
}

// ConfirmOverwrite asks before replacing an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Overwrite " + path + "?").
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(Theme()).Run()
	return ok, err
}

// RunValidateForm prompts for the format to validate against.
func RunValidateForm(format *string) error {
	return huh.NewForm(
		huh.NewGroup(FormatSelect("Format", format)),
	).WithTheme(Theme()).Run()
}
