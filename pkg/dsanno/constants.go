package dsanno

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Command completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitApprovalDenied    = 12 // User declined to replace an existing file
	ExitMalformedFilename = 20 // A filename does not follow the naming convention
	ExitClassification    = 21 // A record could not be classified as surface or volume
	ExitSchemaError       = 22 // Unsupported schema requested
	ExitDocumentError     = 23 // Annotation document missing, malformed, or unwritable
	ExitIncomplete        = 24 // Annotations are missing required keys
	ExitDuplicate         = 25 // Two annotations resolve to the same file
)

const (
	// AbsentToken is how an absent or missing value renders inside an encoded
	// filename or a report cell. Released filenames already contain it, so the
	// spelling is part of the on-disk convention.
	AbsentToken = "None"

	// SentinelSegment is the stem segment that closes every derivative filename.
	// It carries no key/value pair.
	SentinelSegment = "feature"

	// SurfaceExtension is the extension of surface derivatives (GIFTI shape files).
	SurfaceExtension = ".shape.gii"

	// VolumeExtension is the extension of volume derivatives (compressed NIfTI).
	VolumeExtension = ".nii.gz"

	// SegmentSeparator joins key/value segments inside a filename stem.
	SegmentSeparator = "_"

	// PairSeparator splits a segment into its key and value.
	PairSeparator = "-"

	// ExtensionSeparator splits the stem from the extension parts.
	ExtensionSeparator = "."

	// DefaultChecksumAlgorithm matches the digests published with existing releases.
	DefaultChecksumAlgorithm = "md5"

	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = "dsanno.yaml"
)
