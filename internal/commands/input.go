// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/translate"
	"github.com/spf13/cobra"
)

// readInput reads the source text from path, or from stdin when path is
// empty or "-". JSON Schema files may be YAML; with resolveRefs their
// external file $refs are inlined first.
func readInput(cmd *cobra.Command, source translate.Format, path string, resolveRefs bool) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}

	if source == translate.JSONSchema && resolveRefs {
		return loadJSONSchema(path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	if source == translate.JSONSchema && jschema.IsYAMLPath(path) {
		if data, err = jschema.YAMLToJSON(data); err != nil {
			return "", translate.Failf(translate.ErrInvalidJSON, "Invalid YAML in %s: %v", path, err)
		}
	}
	return string(data), nil
}

func loadJSONSchema(path string) (string, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	loader := jschema.NewLoader(os.DirFS(dir))
	schema, err := loader.LoadFile(name)
	if err != nil {
		return "", translate.Failf(translate.ErrInvalidJSON, "Invalid JSON Schema in %s: %v", path, err)
	}
	if err := loader.ResolveRefs(schema, "."); err != nil {
		return "", translate.Failf(translate.ErrInvalidJSON, "Cannot resolve $ref in %s: %v", path, err)
	}
	data, err := jschema.Encode(schema)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode resolved schema")
	}
	return string(data), nil
}
