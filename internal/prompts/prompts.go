// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prompts provides interactive terminal prompts for CLI commands.
package prompts

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

// Theme returns the shared huh theme used across all CLI forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form.Base = theme.Form.Base.MarginTop(1)
	theme.Group.Base = theme.Group.Base.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// Interactive reports whether stdin and stdout are both terminals, so that
// forms can be shown.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// ResultField is a label-value pair for PrintResult. Failed fields are
// printed with a red cross instead of a green checkmark.
type ResultField struct {
	Label  string
	Value  string
	Failed bool
}

// PrintResult prints a styled summary with checkmarks and gray labels.
func PrintResult(w io.Writer, fields []ResultField, successMsg string) {
	check := successStyle.Render("✓")
	cross := failureStyle.Render("✗")

	_, _ = fmt.Fprintln(w)
	for _, f := range fields {
		mark := check
		if f.Failed {
			mark = cross
		}
		_, _ = fmt.Fprintf(w, "%s %s %s\n", mark, labelStyle.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		_, _ = fmt.Fprintln(w, successStyle.Render("\n"+successMsg))
	}
}

// PrintInvalid prints a failed validation message.
func PrintInvalid(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", failureStyle.Render("✗"), msg)
}

func requiredValidator(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.Newf("%s is required", field)
		}
		return nil
	}
}

func fileValidator(s string) error {
	if s == "" {
		return errors.New("input file is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return errors.Newf("cannot read %s", s)
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", s)
	}
	return nil
}
