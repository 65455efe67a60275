package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dsanno/internal/checksum"
	"github.com/vvka-141/dsanno/internal/schema"
)

// checksumAlgorithms contains the algorithms accepted by --checksum.
var checksumAlgorithms = []string{checksum.AlgorithmMD5, checksum.AlgorithmSHA256}

// completeSchemaNames provides shell completion for --schema values.
func completeSchemaNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(schema.Default().VariantNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeChecksumAlgorithms provides shell completion for --checksum values.
func completeChecksumAlgorithms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(checksumAlgorithms, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeJSONFiles restricts file completion to annotation documents.
func completeJSONFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

func filterPrefix(candidates []string, prefix string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}
