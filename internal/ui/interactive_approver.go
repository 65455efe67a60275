package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the file name
// of the document about to be replaced.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an approver reading answers from input and
// writing prompts to output.
func NewInteractiveApprover(input io.Reader, output io.Writer) dsanno.Approver {
	return &InteractiveApprover{input: input, output: output}
}

// RequestApproval prompts the user to type the base name of path to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, path string) (bool, error) {
	name := filepath.Base(path)
	fmt.Fprintf(a.output, "\n⚠ %s already exists and will be replaced.\n", path)
	fmt.Fprintf(a.output, "To confirm, type the file name '%s' and press Enter: ", name)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == name {
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match '%s'. Operation cancelled.\n", input, name)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ dsanno.Approver = (*InteractiveApprover)(nil)
