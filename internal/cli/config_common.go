package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/checksum"
	"github.com/vvka-141/dsanno/internal/config"
	"github.com/vvka-141/dsanno/internal/report"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Environment variables consulted when the matching flag is not set.
const (
	envRoot     = "DSANNO_ROOT"
	envChecksum = "DSANNO_CHECKSUM"
)

// settings are the effective values a command runs with.
type settings struct {
	Root     string
	Checksum string
	sections *config.ProjectConfig
}

// Section returns the document section for a schema variant, preferring
// dsanno.yaml over the variant's default.
func (s *settings) Section(variant string) string {
	if section := s.sections.SectionFor(variant); section != "" {
		return section
	}
	v, err := schema.Default().Lookup(variant)
	if err != nil {
		return ""
	}
	return v.Section
}

// resolveSettings merges every configuration source.
// Priority (highest to lowest): flags > environment > dsanno.yaml > defaults
func resolveSettings(cmd *cobra.Command, flagRoot, flagChecksum string) (*settings, error) {
	projectDir := getProjectFlag(cmd)
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig(projectDir)
	if err != nil {
		return nil, err
	}

	s := &settings{sections: projectCfg}

	switch {
	case flagRoot != "":
		s.Root = flagRoot
	case os.Getenv(envRoot) != "":
		s.Root = os.Getenv(envRoot)
	default:
		s.Root = projectCfg.ResolveRoot(projectDir)
	}
	if s.Root == "" {
		s.Root = "."
	}

	switch {
	case flagChecksum != "":
		s.Checksum = flagChecksum
	case os.Getenv(envChecksum) != "":
		s.Checksum = os.Getenv(envChecksum)
	case projectCfg != nil && projectCfg.Checksum != "":
		s.Checksum = projectCfg.Checksum
	default:
		s.Checksum = dsanno.DefaultChecksumAlgorithm
	}
	if _, err := checksum.New(s.Checksum); err != nil {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] Dataset root: %s\n", s.Root)
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] Checksum algorithm: %s\n", s.Checksum)
	}
	return s, nil
}

// loadProjectConfig loads .env and dsanno.yaml from the project directory.
// Returns nil config if dsanno.yaml does not exist (not an error).
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))

	projectCfg, err := config.Load(projectDir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// reportOptions enables color only when stdout is a terminal.
func reportOptions(cmd *cobra.Command) report.Options {
	return report.Options{Color: report.ColorEnabled(cmd.OutOrStdout())}
}
