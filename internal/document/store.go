// Package document reads and writes annotation records in JSON documents.
//
// An annotation document is a JSON object whose sections hold lists of
// records:
//
//	{
//	    "ds-annotations": [
//	        {"source": "HCP", "desc": "thickness", ...}
//	    ]
//	}
//
// A section may name a nested object with "/" ("release/ds-annotations").
// Record key order is preserved in both directions.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// SectionSeparator separates the levels of a nested section name.
const SectionSeparator = "/"

const indent = "    "

// JSONStore implements dsanno.DocumentStore for JSON files.
type JSONStore struct {
	fs filesystem.FileSystemProvider
}

// NewJSONStore creates a store that reads and writes through fsProvider.
// Panics if fsProvider is nil.
func NewJSONStore(fsProvider filesystem.FileSystemProvider) *JSONStore {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &JSONStore{fs: fsProvider}
}

// Read returns the records stored under section in the document at path.
//
// Error cases (all wrap dsanno.ErrDocument):
//   - The file cannot be read or is not valid JSON
//   - The section, or one of its parents, does not exist
//   - The section is not a list of objects
func (s *JSONStore) Read(path, section string) ([]dsanno.Record, error) {
	levels, err := splitSection(section)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", dsanno.ErrDocument, path, err)
	}

	node := json.RawMessage(data)
	for i, level := range levels {
		var object map[string]json.RawMessage
		if err := json.Unmarshal(node, &object); err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a JSON object: %w",
				dsanno.ErrDocument, path, parentName(levels[:i]), err)
		}
		child, ok := object[level]
		if !ok {
			return nil, fmt.Errorf("%w: %s: section %q not found", dsanno.ErrDocument, path, strings.Join(levels[:i+1], SectionSeparator))
		}
		node = child
	}

	var items []json.RawMessage
	if bytes.Equal(bytes.TrimSpace(node), []byte("null")) {
		return nil, fmt.Errorf("%w: %s: section %q is null, expected a list", dsanno.ErrDocument, path, section)
	}
	if err := json.Unmarshal(node, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: section %q is not a list: %w", dsanno.ErrDocument, path, section, err)
	}

	records := make([]dsanno.Record, 0, len(items))
	for i, item := range items {
		var r dsanno.Record
		if err := r.UnmarshalJSON(item); err != nil {
			return nil, fmt.Errorf("%w: %s: section %q item %d: %w", dsanno.ErrDocument, path, section, i, err)
		}
		records = append(records, r)
	}

	return records, nil
}

// Write replaces the document at path with records stored under section.
// The output is indented with four spaces, keeps record key order and writes
// absent values as null.
func (s *JSONStore) Write(path, section string, records []dsanno.Record) error {
	data, err := Marshal(section, records)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", dsanno.ErrDocument, path, err)
	}
	return nil
}

// Marshal renders records as an indented document under section.
func Marshal(section string, records []dsanno.Record) ([]byte, error) {
	levels, err := splitSection(section)
	if err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	for _, level := range levels {
		key, err := quote(level)
		if err != nil {
			return nil, err
		}
		compact.WriteByte('{')
		compact.Write(key)
		compact.WriteByte(':')
	}

	compact.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		item, err := r.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", dsanno.ErrDocument, i, err)
		}
		compact.Write(item)
	}
	compact.WriteByte(']')
	compact.WriteString(strings.Repeat("}", len(levels)))

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("%w: %w", dsanno.ErrDocument, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func splitSection(section string) ([]string, error) {
	levels := strings.Split(section, SectionSeparator)
	for _, level := range levels {
		if level == "" {
			return nil, fmt.Errorf("%w: invalid section name %q", dsanno.ErrDocument, section)
		}
	}
	return levels, nil
}

func parentName(levels []string) string {
	if len(levels) == 0 {
		return "document root"
	}
	return strings.Join(levels, SectionSeparator)
}

func quote(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var _ dsanno.DocumentStore = (*JSONStore)(nil)
