package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/normalize"
	"github.com/vvka-141/dsanno/internal/schema"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <document.json>",
	Short: "Give every annotation exactly the keys of a schema",
	Long: `Normalize reads an annotation document and rewrites each record so it
carries exactly the keys of the chosen schema, in schema order. Missing keys
become null; keys outside the schema are dropped.

Schemas:
  minimal - per-file annotations (section "ds-annotations")
  info    - per-source dataset information (section "info")

The result is printed to stdout unless --output is given. Nested sections
are addressed with "/", for example "release/ds-annotations".

Examples:
  # Print a fillable template of the annotations
  dsanno normalize annotations.json

  # Normalize the info section in place
  dsanno normalize meta.json --schema info --output meta.json`,
	Args:              RequireDocumentPath,
	ValidArgsFunction: completeJSONFiles,
	RunE:              runNormalize,
}

var normalizeFlags struct {
	schema        string
	section       string
	output        string
	outputSection string
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVar(&normalizeFlags.schema, "schema", schema.Minimal, "Schema variant (minimal, info)")
	normalizeCmd.Flags().StringVar(&normalizeFlags.section, "section", "", "Section to read (default: the schema's section)")
	normalizeCmd.Flags().StringVarP(&normalizeFlags.output, "output", "o", "", "Write the normalized document to this file")
	normalizeCmd.Flags().StringVar(&normalizeFlags.outputSection, "output-section", "", "Section to write (default: the section read)")

	_ = normalizeCmd.RegisterFlagCompletionFunc("schema", completeSchemaNames)
}

func resetNormalizeFlags() {
	normalizeFlags.schema = schema.Minimal
	normalizeFlags.section = ""
	normalizeFlags.output = ""
	normalizeFlags.outputSection = ""
}

func runNormalize(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := resolveSettings(cmd, "", "")
	if err != nil {
		return err
	}

	section := normalizeFlags.section
	if section == "" {
		section = cfg.Section(normalizeFlags.schema)
	}
	outputSection := normalizeFlags.outputSection
	if outputSection == "" {
		outputSection = section
	}

	store := document.NewJSONStore(filesystem.NewOSFileSystem())
	records, err := normalize.NormalizeDocument(store, inputPath, normalizeFlags.schema, section)
	if err != nil {
		return err
	}

	if normalizeFlags.output == "" {
		data, err := document.Marshal(outputSection, records)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := store.Write(normalizeFlags.output, outputSection, records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Normalized %d record(s) to %s\n", len(records), normalizeFlags.output)
	return nil
}
