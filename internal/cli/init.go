package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dsanno/internal/checksum"
	"github.com/vvka-141/dsanno/internal/config"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var initCmd = &cobra.Command{
	Use:   "init [project_path]",
	Short: "Create a dsanno.yaml project file",
	Long: `Init writes a dsanno.yaml into the project directory (default: current
directory) so later commands pick up the dataset root and checksum algorithm
without flags.

An existing dsanno.yaml is never overwritten unless --force is given.

Examples:
  dsanno init
  dsanno init ./release --root ../maps --checksum sha256`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

var initFlags struct {
	root     string
	checksum string
	force    bool
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFlags.root, "root", ".", "Dataset root, relative to the project directory")
	initCmd.Flags().StringVar(&initFlags.checksum, "checksum", dsanno.DefaultChecksumAlgorithm, "Checksum algorithm (md5, sha256)")
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite an existing dsanno.yaml")

	_ = initCmd.RegisterFlagCompletionFunc("checksum", completeChecksumAlgorithms)
}

func resetInitFlags() {
	initFlags.root = "."
	initFlags.checksum = dsanno.DefaultChecksumAlgorithm
	initFlags.force = false
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	if _, err := checksum.New(initFlags.checksum); err != nil {
		return err
	}

	configPath := filepath.Join(targetDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initFlags.force {
		return fmt.Errorf("%s already exists\n\nUse --force to overwrite it", configPath)
	}

	cfg := &config.ProjectConfig{
		Root:     initFlags.root,
		Checksum: initFlags.checksum,
	}
	if err := saveProjectConfig(targetDir, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Created %s\n", configPath)
	fmt.Fprintln(cmd.ErrOrStderr(), "\nNext steps:")
	fmt.Fprintln(cmd.ErrOrStderr(), "  dsanno scan <dataset_root> --output fillable.json")
	fmt.Fprintln(cmd.ErrOrStderr(), "  dsanno release fillable.json release.json")
	return nil
}

// saveProjectConfig writes cfg as dsanno.yaml in dir, creating dir if needed.
func saveProjectConfig(dir string, cfg *config.ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, config.ConfigFileName), data, 0644)
}
