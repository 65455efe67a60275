package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/normalize"
	"github.com/vvka-141/dsanno/internal/report"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var describeCmd = &cobra.Command{
	Use:   "describe <document.json>",
	Short: "Report annotations that are missing keys",
	Long: `Describe audits an annotation document against a schema and shows, for
every record, which keys are set, explicitly null, or missing altogether.

The command exits with code 24 when any record is missing a key, so it can
gate a release in CI.

Examples:
  # Audit the per-file annotations
  dsanno describe annotations.json

  # Audit dataset information as JSON
  dsanno describe meta.json --schema info --json`,
	Args:              RequireDocumentPath,
	ValidArgsFunction: completeJSONFiles,
	RunE:              runDescribe,
}

var describeFlags struct {
	schema  string
	section string
	json    bool
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeFlags.schema, "schema", schema.Minimal, "Schema variant (minimal, info)")
	describeCmd.Flags().StringVar(&describeFlags.section, "section", "", "Section to read (default: the schema's section)")
	describeCmd.Flags().BoolVar(&describeFlags.json, "json", false, "Output the audit as JSON")

	_ = describeCmd.RegisterFlagCompletionFunc("schema", completeSchemaNames)
}

func resetDescribeFlags() {
	describeFlags.schema = schema.Minimal
	describeFlags.section = ""
	describeFlags.json = false
}

func runDescribe(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	variant, err := schema.Default().Lookup(describeFlags.schema)
	if err != nil {
		return err
	}

	cfg, err := resolveSettings(cmd, "", "")
	if err != nil {
		return err
	}
	section := describeFlags.section
	if section == "" {
		section = cfg.Section(variant.Name)
	}

	store := document.NewJSONStore(filesystem.NewOSFileSystem())
	records, err := store.Read(inputPath, section)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	summary := normalize.Summarize(records, variant.Keys.Keys())

	if describeFlags.json {
		if err := writeSummaryJSON(cmd, summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(summary, reportOptions(cmd)))
	}

	if incomplete := summary.Incomplete(); len(incomplete) > 0 {
		return fmt.Errorf("%w: %d of %d record(s) in %s", dsanno.ErrIncomplete, len(incomplete), len(summary.Rows), inputPath)
	}
	return nil
}

func writeSummaryJSON(cmd *cobra.Command, summary normalize.Summary) error {
	type rowJSON struct {
		Index   int      `json:"index"`
		Missing []string `json:"missing"`
	}

	rows := make([]rowJSON, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		missing := row.Missing
		if missing == nil {
			missing = []string{}
		}
		rows = append(rows, rowJSON{Index: row.Index, Missing: missing})
	}

	output := map[string]interface{}{
		"keys":       summary.Keys,
		"records":    len(summary.Rows),
		"incomplete": len(summary.Incomplete()),
		"counts":     summary.Counts(),
		"rows":       rows,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
