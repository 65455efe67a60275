package dsanno

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	out, err := engine.Complete(record)
//	if errors.Is(err, dsanno.ErrClassification) {
//	    // Surface the record to the author; keep processing the batch
//	}
var (
	// ErrMalformedFilename indicates a filename does not follow the naming convention.
	ErrMalformedFilename = errors.New("malformed filename")

	// ErrClassification indicates a record cannot be determined to be surface or volume.
	ErrClassification = errors.New("record cannot be classified")

	// ErrInvalidFormat indicates a record carries a format other than surface or volume
	// where a classified record was expected.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrSchema indicates an unsupported schema name was requested.
	ErrSchema = errors.New("unsupported schema")

	// ErrDocument indicates an annotation document could not be read or written.
	ErrDocument = errors.New("document error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIncomplete indicates one or more records miss required keys.
	ErrIncomplete = errors.New("incomplete annotations")

	// ErrApprovalDenied indicates the user declined to replace an existing file.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrDuplicate indicates two records resolve to the same derivative file.
	ErrDuplicate = errors.New("duplicate annotations")
)

// usageErrorPatterns are message fragments produced by cobra for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrMalformedFilename):
		return ExitMalformedFilename
	case errors.Is(err, ErrClassification), errors.Is(err, ErrInvalidFormat):
		return ExitClassification
	case errors.Is(err, ErrSchema):
		return ExitSchemaError
	case errors.Is(err, ErrDocument):
		return ExitDocumentError
	case errors.Is(err, ErrIncomplete):
		return ExitIncomplete
	case errors.Is(err, ErrDuplicate):
		return ExitDuplicate
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
