package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval, used when the --force flag is provided.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a new ForcedApprover announcing replacements on output.
func NewForcedApprover(output io.Writer) dsanno.Approver {
	return &ForcedApprover{output: output}
}

// RequestApproval announces the replacement and approves unless ctx is done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "⚠ Replacing existing %s (--force)\n", path)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ dsanno.Approver = (*ForcedApprover)(nil)
