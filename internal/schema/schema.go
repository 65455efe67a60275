// Package schema defines the fixed vocabulary of annotation keys.
//
// Keys are grouped by role:
//   - Identity keys together name a derivative file.
//   - Derived keys are computed by the completion engine, never hand-authored.
//   - Required-nullable keys must be present in a complete record but may be absent.
//   - Redirection keys select the alternative space/density of a redirected item.
//   - Info keys describe a whole source dataset rather than a single file.
//
// The schema is built once by Default and handed to the components that need it.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Annotation key names.
const (
	KeySource       = "source"
	KeyDesc         = "desc"
	KeySpace        = "space"
	KeyDen          = "den"
	KeyHemi         = "hemi"
	KeyRes          = "res"
	KeyFormat       = "format"
	KeyFname        = "fname"
	KeyRelPath      = "rel_path"
	KeyChecksum     = "checksum"
	KeyTitle        = "title"
	KeyTags         = "tags"
	KeyRedir        = "redir"
	KeyURL          = "url"
	KeyRefs         = "refs"
	KeyComments     = "comments"
	KeyDemographics = "demographics"
)

// Schema variant names accepted by Lookup.
const (
	Minimal = "minimal"
	Info    = "info"
)

// Default document sections for each variant.
const (
	SectionAnnotations = "ds-annotations"
	SectionInfo        = "info"
)

// KeySet is an ordered, immutable list of keys.
type KeySet struct {
	keys []string
}

func newKeySet(groups ...[]string) KeySet {
	var keys []string
	for _, g := range groups {
		keys = append(keys, g...)
	}
	return KeySet{keys: keys}
}

// Keys returns a copy of the keys in schema order.
func (k KeySet) Keys() []string {
	return append([]string(nil), k.keys...)
}

// Contains reports whether key belongs to the set.
func (k KeySet) Contains(key string) bool {
	for _, existing := range k.keys {
		if existing == key {
			return true
		}
	}
	return false
}

// Len returns the number of keys.
func (k KeySet) Len() int { return len(k.keys) }

// Variant is a named schema: the keys a normalized record carries and the
// document section it is read from and written to by default.
type Variant struct {
	Name    string
	Keys    KeySet
	Section string
}

// Schema holds every key group.
type Schema struct {
	Identity      KeySet
	Derived       KeySet
	Conditional   KeySet
	MinimalKeys   KeySet
	Redirection   KeySet
	InfoKeys      KeySet
	variantByName map[string]Variant
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// Default returns the process-wide schema. It is constructed on first use and
// never modified afterwards.
func Default() *Schema {
	defaultOnce.Do(func() {
		defaultSchema = build()
	})
	return defaultSchema
}

func build() *Schema {
	identity := []string{KeySource, KeyDesc, KeySpace, KeyDen, KeyHemi, KeyRes}
	derived := []string{KeyFormat, KeyFname, KeyRelPath, KeyChecksum}
	conditional := []string{KeyTitle, KeyTags, KeyRedir, KeyURL}

	s := &Schema{
		Identity:    newKeySet(identity),
		Derived:     newKeySet(derived),
		Conditional: newKeySet(conditional),
		MinimalKeys: newKeySet(identity, derived, conditional),
		Redirection: newKeySet([]string{KeySpace, KeyDen}),
		InfoKeys:    newKeySet([]string{KeySource, KeyRefs, KeyComments, KeyDemographics}),
	}
	s.variantByName = map[string]Variant{
		Minimal: {Name: Minimal, Keys: s.MinimalKeys, Section: SectionAnnotations},
		Info:    {Name: Info, Keys: s.InfoKeys, Section: SectionInfo},
	}
	return s
}

// Lookup resolves a variant by name.
// Unknown names return an error wrapping dsanno.ErrSchema.
func (s *Schema) Lookup(name string) (Variant, error) {
	v, ok := s.variantByName[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q (supported: %s)", dsanno.ErrSchema, name, strings.Join(s.VariantNames(), ", "))
	}
	return v, nil
}

// VariantNames returns the supported variant names, sorted.
func (s *Schema) VariantNames() []string {
	names := make([]string, 0, len(s.variantByName))
	for name := range s.variantByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IdentityKeysFor returns the identity keys that apply to a format, in filename order.
// Surface records carry den and hemi; volume records carry res.
func (s *Schema) IdentityKeysFor(f dsanno.Format) []string {
	switch f {
	case dsanno.FormatSurface:
		return []string{KeySource, KeyDesc, KeySpace, KeyDen, KeyHemi}
	case dsanno.FormatVolume:
		return []string{KeySource, KeyDesc, KeySpace, KeyRes}
	default:
		return s.Identity.Keys()
	}
}

// InapplicableKeys returns the identity keys a record of format f must not carry.
func (s *Schema) InapplicableKeys(f dsanno.Format) []string {
	switch f {
	case dsanno.FormatSurface:
		return []string{KeyRes}
	case dsanno.FormatVolume:
		return []string{KeyDen, KeyHemi}
	default:
		return nil
	}
}
