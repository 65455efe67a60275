// Package checksum computes content digests of derivative files.
//
// Two algorithms are supported:
//
//   - md5 (default): matches the digests recorded in released annotation files
//   - sha256: for new datasets that do not need compatibility
//
// FileHasher adapts a Calculator to dsanno.FileChecker so the completion engine
// can test for a file and digest it without touching the OS directly.
//
// # Example Usage
//
//	calc, err := checksum.New("md5")
//	if err != nil {
//	    return err
//	}
//	hasher := checksum.NewFileHasher(filesystem.NewOSFileSystem(), calc)
//	if hasher.Exists(path) {
//	    digest, err := hasher.Digest(path)
//	}
//
// # Thread Safety
//
// MD5, SHA256 and FileHasher are safe for concurrent use by multiple goroutines.
package checksum
