package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/logging"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var rootCmd = &cobra.Command{
	Use:   "dsanno",
	Short: "Annotation tooling for derivative map datasets",
	Long: `dsanno maintains the annotation documents that describe a dataset's
derivative maps. Every derivative file is named by a strict convention:

  source-<source>_desc-<desc>_space-<space>_den-<den>_hemi-<hemi>_feature.shape.gii
  source-<source>_desc-<desc>_space-<space>_res-<res>_feature.nii.gz

dsanno decodes those names, fills in missing annotation keys, and computes
each record's format, filename, relative path and checksum for release.

Configuration is read from dsanno.yaml in the project directory and from the
DSANNO_ROOT and DSANNO_CHECKSUM environment variables (a .env file is loaded
if present). Flags take precedence over both.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  12 - User declined to replace an existing file
  20 - Malformed filename
  21 - Record cannot be classified as surface or volume
  22 - Unsupported schema
  23 - Annotation document cannot be read or written
  24 - Annotations are missing required keys
  25 - Duplicate annotations`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("project", ".", "Directory holding dsanno.yaml and .env")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

// getProjectFlag returns the project directory, defaulting to the working directory.
func getProjectFlag(cmd *cobra.Command) string {
	project, err := cmd.Flags().GetString("project")
	if err != nil || project == "" {
		return "."
	}
	return project
}

// newLogger creates the command's logger on its stderr stream.
func newLogger(cmd *cobra.Command) dsanno.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}
