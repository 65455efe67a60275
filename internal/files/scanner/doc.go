// Package scanner discovers derivative files in a dataset tree.
//
// The scanner package is responsible for:
//   - Recursively discovering .shape.gii and .nii.gz files under a dataset root
//   - Decoding each filename into an annotation record
//   - Flagging files stored outside their canonical {source}/{desc}/{space}/ directory
//   - Collecting malformed filenames without aborting the scan
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
