// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// IsYAMLPath reports whether a file path names a YAML document.
func IsYAMLPath(filePath string) bool {
	return strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml")
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
// YAML files are converted to JSON first; key order is kept either way.
func (l *Loader) LoadFile(filePath string) (*Schema, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if IsYAMLPath(filePath) {
		if data, err = YAMLToJSON(data); err != nil {
			return nil, err
		}
	}
	return Decode(data)
}

// ResolveRefs resolves all external file $refs in the schema tree in-place.
// It recursively loads referenced schemas and replaces the ref with the loaded content.
// Internal refs (starting with #) are left unchanged.
// A file that refers back to itself, directly or through other files, is an
// error.
func (l *Loader) ResolveRefs(schema *Schema, basePath string) error {
	return l.resolveRefs(schema, basePath, nil)
}

func (l *Loader) resolveRefs(schema *Schema, basePath string, chain []string) error {
	for s := range Traverse(schema, nil) {
		if !IsFileRef(s.Ref) {
			continue
		}
		refPath := path.Join(basePath, s.Ref)
		if slices.Contains(chain, refPath) {
			return errors.Newf("circular $ref: %s", strings.Join(append(chain, refPath), " -> "))
		}
		loaded, err := l.LoadFile(refPath)
		if err != nil {
			return err
		}
		if err := l.resolveRefs(loaded, path.Dir(refPath), append(slices.Clone(chain), refPath)); err != nil {
			return err
		}
		*s = *loaded
	}
	return nil
}

// YAMLToJSON re-encodes a YAML document as JSON, preserving mapping order.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	w := &yamlWriter{active: make(map[*yaml.Node]bool)}
	if err := w.write(&doc); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// maxAliasExpansions caps how many aliases one document may expand, which
// bounds the output of nested anchors that each repeat the previous one.
const maxAliasExpansions = 10_000

type yamlWriter struct {
	buf     bytes.Buffer
	active  map[*yaml.Node]bool
	aliases int
}

func (w *yamlWriter) write(n *yaml.Node) error {
	buf := &w.buf
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return w.write(n.Content[0])
	case yaml.AliasNode:
		if w.active[n.Alias] {
			return errors.Newf("line %d: alias *%s refers to itself", n.Line, n.Value)
		}
		if w.aliases++; w.aliases > maxAliasExpansions {
			return errors.Newf("line %d: more than %d alias expansions", n.Line, maxAliasExpansions)
		}
		w.active[n.Alias] = true
		defer delete(w.active, n.Alias)
		return w.write(n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := marshalNoEscape(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := w.write(n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := w.write(c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		return writeYAMLScalar(buf, n)
	default:
		return errors.Newf("line %d: unsupported YAML node", n.Line)
	}
	return nil
}

func writeYAMLScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "line %d", n.Line)
		}
		buf.Write(b)
		return nil
	}
	b, err := marshalNoEscape(n.Value)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
