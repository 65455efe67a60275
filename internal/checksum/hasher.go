package checksum

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// FileHasher checks derivative files for existence and digests their content.
// It implements dsanno.FileChecker on top of a filesystem provider.
type FileHasher struct {
	fs   filesystem.FileSystemProvider
	calc Calculator
}

// NewFileHasher creates a FileHasher that reads through fsProvider and hashes
// with calc. Panics if either is nil.
func NewFileHasher(fsProvider filesystem.FileSystemProvider, calc Calculator) *FileHasher {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calc == nil {
		panic("calc cannot be nil")
	}
	return &FileHasher{fs: fsProvider, calc: calc}
}

// Algorithm returns the name of the digest algorithm in use.
func (h *FileHasher) Algorithm() string {
	return h.calc.Algorithm()
}

// Exists reports whether a regular file exists at path. Directories and
// unreadable paths report false.
func (h *FileHasher) Exists(path string) bool {
	info, err := h.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Digest streams the file at path through the calculator.
// The file is closed on every return path.
func (h *FileHasher) Digest(path string) (string, error) {
	f, err := h.fs.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", filepath.ToSlash(path), err)
	}
	defer f.Close()

	sum, err := h.calc.Sum(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", filepath.ToSlash(path), err)
	}
	return sum, nil
}

var _ dsanno.FileChecker = (*FileHasher)(nil)
