package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/checksum"
	"github.com/vvka-141/dsanno/internal/completion"
	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/normalize"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/internal/ui"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var releaseCmd = &cobra.Command{
	Use:   "release <input.json> <output.json>",
	Short: "Complete annotations and write a release document",
	Long: `Release completes every annotation in the input document and writes the
result under the "ds-annotations" section of the output document.

For each record, release:
  1. Fills keys of the minimal schema that are missing with null, then
     classifies it as a surface or volume map
  2. Sets "format", "fname" and "rel_path" from its identity keys
  3. Computes "checksum" when rel_path/fname exists under the dataset root
     (null otherwise)
  4. Drops keys that do not apply to its format
  5. Keeps only the keys of the minimal schema

Records that cannot be completed are written unchanged and reported; the
command then exits with a non-zero code. Duplicate annotations are reported
with exit code 25.

An existing output document is only replaced after confirmation, or with
--force when no terminal is attached.

Configuration priority (highest to lowest):
  flags > DSANNO_ROOT / DSANNO_CHECKSUM > dsanno.yaml > defaults

Examples:
  # Complete against the dataset in ./maps
  dsanno release fillable.json release.json --root ./maps

  # Use SHA-256 digests
  dsanno release fillable.json release.json --root ./maps --checksum sha256`,
	Args: RequireInputOutput,
	RunE: runRelease,
}

var releaseFlags struct {
	root          string
	checksum      string
	section       string
	outputSection string
	force         bool
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVar(&releaseFlags.root, "root", "", "Dataset root that rel_path is resolved against (default: .)")
	releaseCmd.Flags().StringVar(&releaseFlags.checksum, "checksum", "", "Checksum algorithm (md5, sha256)")
	releaseCmd.Flags().StringVar(&releaseFlags.section, "section", "", "Section to read from the input (default: ds-annotations)")
	releaseCmd.Flags().StringVar(&releaseFlags.outputSection, "output-section", "", "Section to write (default: ds-annotations)")
	releaseCmd.Flags().BoolVarP(&releaseFlags.force, "force", "f", false, "Replace an existing output document without confirmation")

	_ = releaseCmd.RegisterFlagCompletionFunc("checksum", completeChecksumAlgorithms)
	_ = releaseCmd.RegisterFlagCompletionFunc("root", completeDirectories)
}

func resetReleaseFlags() {
	releaseFlags.root = ""
	releaseFlags.checksum = ""
	releaseFlags.section = ""
	releaseFlags.outputSection = ""
	releaseFlags.force = false
}

func runRelease(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]
	logger := newLogger(cmd)

	cfg, err := resolveSettings(cmd, releaseFlags.root, releaseFlags.checksum)
	if err != nil {
		return err
	}
	calc, err := checksum.New(cfg.Checksum)
	if err != nil {
		return err
	}

	section := releaseFlags.section
	if section == "" {
		section = cfg.Section(schema.Minimal)
	}
	outputSection := releaseFlags.outputSection
	if outputSection == "" {
		outputSection = cfg.Section(schema.Minimal)
	}

	if err := confirmOverwrite(cmd, outputPath, releaseFlags.force); err != nil {
		return err
	}

	fsProvider := filesystem.NewOSFileSystem()
	store := document.NewJSONStore(fsProvider)

	records, err := store.Read(inputPath, section)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	logger.Verbose("Read %d record(s) from %s", len(records), inputPath)

	records, err = normalize.Normalize(records, schema.Minimal)
	if err != nil {
		return err
	}

	engine := completion.NewEngine(schema.Default(), checksum.NewFileHasher(fsProvider, calc), cfg.Root, logger)
	completed, errs := engine.CompleteAll(records)
	errs = append(errs, engine.Duplicates(completed)...)

	if err := store.Write(outputPath, outputSection, completed); err != nil {
		return err
	}

	for _, recErr := range errs {
		logger.Error("%v", recErr)
	}
	if len(errs) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ Wrote %d record(s) to %s with %d problem(s)\n", len(completed), outputPath, len(errs))
		return errors.Join(errs...)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Released %d record(s) to %s\n", len(completed), outputPath)
	return nil
}

// confirmOverwrite asks before an existing file at path is replaced.
// Without a terminal, replacement requires force.
func confirmOverwrite(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var approver dsanno.Approver
	switch {
	case force:
		approver = ui.NewForcedApprover(cmd.ErrOrStderr())
	case ui.IsTerminal(cmd.InOrStdin()):
		approver = ui.NewInteractiveApprover(cmd.InOrStdin(), cmd.ErrOrStderr())
	default:
		return fmt.Errorf("%w: %s already exists\n\nUse --force to replace it", dsanno.ErrApprovalDenied, path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	approved, err := approver.RequestApproval(ctx, path)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: %s was not replaced", dsanno.ErrApprovalDenied, path)
	}
	return nil
}
