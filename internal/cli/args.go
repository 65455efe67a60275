package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireDocumentPath validates that exactly one annotation document argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireDocumentPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <document.json>

Usage: %s

Example:
  %s annotations.json`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireDatasetRoot validates that exactly one dataset root argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireDatasetRoot(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <dataset_root>

Usage: %s

Example:
  %s ./maps --output annotations.json`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireInputOutput validates that an input and an output document are provided.
func RequireInputOutput(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`missing required argument: <input.json> <output.json>

Usage: %s

Example:
  %s fillable.json release.json --root ./maps`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}
