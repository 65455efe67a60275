package filename

import (
	"fmt"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// FilenameError represents a filename that violates the naming convention.
// It includes the offending filename, the segment that failed, and an
// actionable suggestion.
type FilenameError struct {
	Filename string // Filename as given to the decoder
	Line     int    // Line number in a filename list (0 if not read from a list)
	Segment  string // Stem segment that failed to parse, if applicable
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *FilenameError) Error() string {
	location := fmt.Sprintf("%q", e.Filename)
	if e.Line > 0 {
		location = fmt.Sprintf("%q (line %d)", e.Filename, e.Line)
	}

	msg := fmt.Sprintf("malformed filename %s: %s", location, e.Message)
	if e.Segment != "" {
		msg = fmt.Sprintf("malformed filename %s [segment: %q]: %s", location, e.Segment, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

// Unwrap lets callers match with errors.Is(err, dsanno.ErrMalformedFilename).
func (e *FilenameError) Unwrap() error {
	return dsanno.ErrMalformedFilename
}

const conventionHint = "Derivative filenames follow one of:\n" +
	"  source-<source>_desc-<desc>_space-<space>_den-<den>_hemi-<hemi>_feature.shape.gii\n" +
	"  source-<source>_desc-<desc>_space-<space>_res-<res>_feature.nii.gz\n" +
	"Values must not contain '_', '-' or '.'."
