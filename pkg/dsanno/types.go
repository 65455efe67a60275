package dsanno

import "context"

// Format is the derivative file shape a record describes.
type Format string

const (
	// FormatUnknown marks a record that has not been (or cannot be) classified.
	FormatUnknown Format = ""

	// FormatSurface is a per-vertex surface map stored as GIFTI.
	FormatSurface Format = "surface"

	// FormatVolume is a voxel map stored as compressed NIfTI.
	FormatVolume Format = "volume"
)

// Valid reports whether f is one of the two supported shapes.
func (f Format) Valid() bool {
	return f == FormatSurface || f == FormatVolume
}

// Extension returns the filename extension (with leading dot) for the format,
// or "" for an unknown format.
func (f Format) Extension() string {
	switch f {
	case FormatSurface:
		return SurfaceExtension
	case FormatVolume:
		return VolumeExtension
	default:
		return ""
	}
}

// DocumentStore reads and writes record lists stored under a named top-level
// section of a structured document.
// Missing sections and malformed documents are reported as errors wrapping ErrDocument.
type DocumentStore interface {
	// Read returns the records stored under section in the document at path.
	Read(path, section string) ([]Record, error)

	// Write replaces the document at path with records stored under section.
	Write(path, section string, records []Record) error
}

// FileChecker is the filesystem and hashing collaborator of the completion engine.
// Callers must check Exists before calling Digest; Digest is never called for a
// path that does not exist.
type FileChecker interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// Digest returns the hex-encoded content digest of the file at path.
	Digest(path string) (string, error)
}

// Approver confirms replacing an existing output document.
//
// Implementations:
//   - ForcedApprover: Announces the replacement and approves
//   - InteractiveApprover: Prompts the user to type the file name for confirmation
type Approver interface {
	// RequestApproval asks whether the document at path may be replaced.
	// Returns false without error when the user declines.
	RequestApproval(ctx context.Context, path string) (bool, error)
}
