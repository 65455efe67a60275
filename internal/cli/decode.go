package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/filename"
	"github.com/vvka-141/dsanno/internal/report"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [filename...]",
	Short: "Decode derivative filenames into annotation records",
	Long: `Decode splits derivative filenames into their key/value pairs.

Filenames are taken from the arguments, or one per line from --list
("-" reads standard input). Directory prefixes are ignored and blank lines
are skipped. Every well-formed name is printed; malformed names are reported
together and make the command exit with code 20.

Examples:
  # Decode a single filename
  dsanno decode source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii

  # Decode a file listing as annotation JSON
  dsanno decode --list files.txt --json

  # Decode the files of a dataset
  find ./maps -name '*_feature.*' | dsanno decode --list -`,
	RunE: runDecode,
}

var decodeFlags struct {
	list string
	json bool
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeFlags.list, "list", "", "Read filenames from a file, one per line (\"-\" for stdin)")
	decodeCmd.Flags().BoolVar(&decodeFlags.json, "json", false, "Output records as an annotation document")
}

func resetDecodeFlags() {
	decodeFlags.list = ""
	decodeFlags.json = false
}

func runDecode(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && decodeFlags.list == "" {
		return fmt.Errorf(`missing required argument: <filename> or --list

Usage: %s

Example:
  %s source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz`, cmd.UseLine(), cmd.CommandPath())
	}

	codec := filename.NewCodec(schema.Default())
	decoded, decodeErr := decodeNames(cmd, codec, args)

	records := make([]dsanno.Record, 0, len(decoded))
	for _, d := range decoded {
		records = append(records, d.Record)
	}

	out := cmd.OutOrStdout()
	if decodeFlags.json {
		data, err := document.Marshal(schema.SectionAnnotations, records)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else if len(records) > 0 {
		fmt.Fprintln(out, report.Records(records, nil, reportOptions(cmd)))
	}

	if decodeErr != nil {
		return decodeErr
	}
	if getVerboseFlag(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] Decoded %d filename(s)\n", len(records))
	}
	return nil
}

// decodeNames decodes the argument list and the --list source.
// Decoding continues past malformed names; their errors are joined.
func decodeNames(cmd *cobra.Command, codec *filename.Codec, args []string) ([]filename.Decoded, error) {
	var decoded []filename.Decoded
	var errs []error

	for _, name := range args {
		d, err := codec.Decode(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decoded = append(decoded, d)
	}

	if decodeFlags.list != "" {
		r, closeFn, err := openList(cmd, decodeFlags.list)
		if err != nil {
			return decoded, err
		}
		defer closeFn()

		listed, err := codec.ParseList(r)
		decoded = append(decoded, listed...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return decoded, errors.Join(errs...)
}

func openList(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open filename list: %w", err)
	}
	return f, func() { f.Close() }, nil
}
