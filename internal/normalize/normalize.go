// Package normalize fills structural gaps in annotation records.
//
// Normalize gives every record exactly the keys of a schema variant, turning
// missing keys into explicit absent values. Summarize reports which keys are
// missing, absent or set so incomplete annotations can be found before release.
package normalize

import (
	"fmt"

	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Normalize returns one record per input holding exactly the keys of the
// named schema variant, in schema order. Present keys keep their value,
// including explicit absent values; missing keys become absent. Keys outside
// the variant are dropped.
//
// An unknown schema name fails the whole call with an error wrapping
// dsanno.ErrSchema and no records.
func Normalize(records []dsanno.Record, schemaName string) ([]dsanno.Record, error) {
	variant, err := schema.Default().Lookup(schemaName)
	if err != nil {
		return nil, err
	}
	return normalizeVariant(records, variant), nil
}

// NormalizeDocument reads the records stored under section of the document at
// path and normalizes them. An empty section selects the variant's default
// ("ds-annotations" for minimal, "info" for info).
//
// The schema name is resolved before the document is touched.
func NormalizeDocument(store dsanno.DocumentStore, path, schemaName, section string) ([]dsanno.Record, error) {
	variant, err := schema.Default().Lookup(schemaName)
	if err != nil {
		return nil, err
	}
	if section == "" {
		section = variant.Section
	}

	records, err := store.Read(path, section)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return normalizeVariant(records, variant), nil
}

func normalizeVariant(records []dsanno.Record, variant schema.Variant) []dsanno.Record {
	keys := variant.Keys.Keys()
	out := make([]dsanno.Record, 0, len(records))

	for _, r := range records {
		var normalized dsanno.Record
		for _, key := range keys {
			v := r.Get(key)
			if v.IsMissing() {
				v = dsanno.Absent()
			}
			normalized.Set(key, v)
		}
		out = append(out, normalized)
	}

	return out
}
