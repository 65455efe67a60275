package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/completion"
	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/filename"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/files/scanner"
	"github.com/vvka-141/dsanno/internal/report"
	"github.com/vvka-141/dsanno/internal/schema"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dataset_root>",
	Short: "Decode every derivative file under a dataset root",
	Long: `Scan walks a dataset tree, decodes the name of every derivative file
(*.shape.gii, *.nii.gz) and prints the resulting records. With --output the
records are written as a fillable annotation document that 'dsanno normalize'
and 'dsanno release' accept.

Hidden files and directories are ignored. Files stored outside their
canonical "{source}/{desc}/{space}/" directory are reported, since release
cannot checksum them. Malformed names are reported with exit code 20.

Examples:
  # List the derivatives of a dataset
  dsanno scan ./maps

  # Bootstrap an annotation document
  dsanno scan ./maps --output fillable.json`,
	Args:              RequireDatasetRoot,
	ValidArgsFunction: completeDirectories,
	RunE:              runScan,
}

var scanFlags struct {
	output string
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFlags.output, "output", "o", "", "Write the records as an annotation document")
}

func resetScanFlags() {
	scanFlags.output = ""
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]
	logger := newLogger(cmd)

	fsProvider := filesystem.NewOSFileSystem()
	s := scanner.NewScannerWithFS(filename.NewCodec(schema.Default()), fsProvider)

	result, err := s.ScanDirectory(root)
	if err != nil {
		return err
	}
	logger.Verbose("Found %d derivative file(s), skipped %d other file(s)", len(result.Entries), len(result.Skipped))

	for _, e := range result.Misplaced() {
		logger.Info("⚠ %s is not under its canonical directory %s", e.Path, completion.RelPath(e.Record))
	}

	records := result.Records()
	if scanFlags.output != "" {
		store := document.NewJSONStore(fsProvider)
		if err := store.Write(scanFlags.output, schema.SectionAnnotations, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d record(s) to %s\n", len(records), scanFlags.output)
	} else if len(records) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.Records(records, nil, reportOptions(cmd)))
	}

	if len(result.Errors) > 0 {
		for _, scanErr := range result.Errors {
			logger.Error("%v", scanErr)
		}
		return fmt.Errorf("%d of %d derivative file(s) have malformed names: %w",
			len(result.Errors), len(result.Entries)+len(result.Errors), errors.Join(result.Errors...))
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No derivative files found under %s\n", root)
	}
	return nil
}
