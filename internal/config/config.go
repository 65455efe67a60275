// Package config loads the optional dsanno.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dsanno/internal/checksum"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SectionsConfig overrides the document section each schema variant is read
// from and written to.
type SectionsConfig struct {
	Minimal string `yaml:"minimal,omitempty"`
	Info    string `yaml:"info,omitempty"`
}

type ProjectConfig struct {
	// Root is the dataset root that rel_path is resolved against.
	// A relative root is relative to the directory holding dsanno.yaml.
	Root     string         `yaml:"root,omitempty"`
	Checksum string         `yaml:"checksum,omitempty"`
	Sections SectionsConfig `yaml:"sections,omitempty"`
}

const ConfigFileName = dsanno.ConfigFileName

// Load reads dsanno.yaml from dir. Unknown keys and invalid values are
// reported as errors wrapping dsanno.ErrInvalidConfig.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", dsanno.ErrInvalidConfig, ConfigFileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *ProjectConfig) Validate() error {
	if c.Checksum != "" {
		if _, err := checksum.New(c.Checksum); err != nil {
			return fmt.Errorf("%s: %w", ConfigFileName, err)
		}
	}
	return nil
}

// ResolveRoot returns Root made absolute against dir. An empty Root resolves to "".
func (c *ProjectConfig) ResolveRoot(dir string) string {
	if c == nil || c.Root == "" {
		return ""
	}
	if filepath.IsAbs(c.Root) {
		return filepath.Clean(c.Root)
	}
	return filepath.Join(dir, c.Root)
}

// SectionFor returns the configured section for a schema variant, or "" when
// the variant's default applies.
func (c *ProjectConfig) SectionFor(variant string) string {
	if c == nil {
		return ""
	}
	switch variant {
	case schema.Minimal:
		return c.Sections.Minimal
	case schema.Info:
		return c.Sections.Info
	default:
		return ""
	}
}
