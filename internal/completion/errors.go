package completion

import (
	"fmt"
)

// RecordError reports a record the engine could not complete.
// It names the record by batch position and identity keys so a human can find
// it in the source document.
type RecordError struct {
	Index    int    // Position in the batch; -1 when the record was completed on its own
	Identity string // Set identity keys, rendered as {k=v ...}
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
	Err      error  // Sentinel or underlying cause
}

// Error implements the error interface with rich formatting.
func (e *RecordError) Error() string {
	subject := "record " + e.Identity
	if e.Index >= 0 {
		subject = fmt.Sprintf("record[%d] %s", e.Index, e.Identity)
	}

	msg := fmt.Sprintf("%s: %s", subject, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s: %v", subject, e.Message, e.Err)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

// Unwrap lets callers match the sentinel (dsanno.ErrClassification,
// dsanno.ErrInvalidFormat) or the underlying I/O error with errors.Is.
func (e *RecordError) Unwrap() error {
	return e.Err
}

const (
	classificationHint = "Set \"den\" and \"hemi\" for a surface map or \"res\" for a volume map,\n" +
		"or declare \"format\": \"surface\" or \"format\": \"volume\" explicitly."

	invalidFormatHint = "\"format\" must be \"surface\" or \"volume\"; complete the record instead of cleaning it directly."

	digestHint = "Check that the file is readable, or remove it from the dataset root to release without a checksum."
)
