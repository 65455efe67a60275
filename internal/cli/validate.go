package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/completion"
	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/logging"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document.json>",
	Short: "Check that every annotation can be completed",
	Long: `Validate performs a dry run of release without touching the dataset:
every record must classify as a surface or volume map, and no two records
may describe the same file. Checksums are not computed.

Exit codes:
  21 - A record cannot be classified or has an invalid "format"
  25 - Two records describe the same file

Examples:
  dsanno validate fillable.json
  dsanno validate fillable.json --json`,
	Args:              RequireDocumentPath,
	ValidArgsFunction: completeJSONFiles,
	RunE:              runValidate,
}

var validateFlags struct {
	section string
	json    bool
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.section, "section", "", "Section to read (default: ds-annotations)")
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Output problems as JSON")
}

func resetValidateFlags() {
	validateFlags.section = ""
	validateFlags.json = false
}

// offlineChecker reports every file as absent, so completion never reads the dataset.
type offlineChecker struct{}

func (offlineChecker) Exists(string) bool { return false }

func (offlineChecker) Digest(path string) (string, error) {
	return "", fmt.Errorf("digest of %s requested in offline mode", path)
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := resolveSettings(cmd, "", "")
	if err != nil {
		return err
	}
	section := validateFlags.section
	if section == "" {
		section = cfg.Section(schema.Minimal)
	}

	store := document.NewJSONStore(filesystem.NewOSFileSystem())
	records, err := store.Read(inputPath, section)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	engine := completion.NewEngine(schema.Default(), offlineChecker{}, cfg.Root, logging.NewNullLogger())
	completed, errs := engine.CompleteAll(records)
	errs = append(errs, engine.Duplicates(completed)...)

	if validateFlags.json {
		if err := writeValidationJSON(cmd, len(records), errs); err != nil {
			return err
		}
	} else if len(errs) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ %d record(s) valid\n", len(records))
	} else {
		for _, recErr := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n\n", recErr)
		}
	}

	return errors.Join(errs...)
}

func writeValidationJSON(cmd *cobra.Command, total int, errs []error) error {
	type problemJSON struct {
		Index   int    `json:"index"`
		Record  string `json:"record"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}

	problems := make([]problemJSON, 0, len(errs))
	for _, err := range errs {
		p := problemJSON{Index: -1, Kind: problemKind(err), Message: err.Error()}
		var recErr *completion.RecordError
		if errors.As(err, &recErr) {
			p.Index = recErr.Index
			p.Record = recErr.Identity
			p.Message = recErr.Message
		}
		problems = append(problems, p)
	}

	output := map[string]interface{}{
		"records":  total,
		"valid":    len(errs) == 0,
		"problems": problems,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func problemKind(err error) string {
	switch {
	case errors.Is(err, dsanno.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, dsanno.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, dsanno.ErrClassification):
		return "unclassifiable"
	default:
		return "error"
	}
}
