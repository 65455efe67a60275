package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Supported algorithm names, as written in dsanno.yaml and the --checksum flag.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
)

// Calculator is an interface for computing content checksums.
// This abstraction allows for different checksum algorithms.
type Calculator interface {
	// Algorithm returns the algorithm name ("md5", "sha256").
	Algorithm() string

	// Sum streams r through the hash and returns the hex digest.
	Sum(r io.Reader) (string, error)
}

// MD5 implements checksum calculation using MD5.
// It is the default because released annotation files carry MD5 digests.
//
// MD5 is a zero-size type and is safe for concurrent use by multiple goroutines.
type MD5 struct{}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New returns the calculator for the named algorithm.
// An empty name selects dsanno.DefaultChecksumAlgorithm; matching is case-insensitive.
func New(algorithm string) (Calculator, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if name == "" {
		name = dsanno.DefaultChecksumAlgorithm
	}

	switch name {
	case AlgorithmMD5:
		return MD5{}, nil
	case AlgorithmSHA256:
		return SHA256{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported checksum algorithm %q (supported: %s, %s)",
			dsanno.ErrInvalidConfig, algorithm, AlgorithmMD5, AlgorithmSHA256)
	}
}

func (MD5) Algorithm() string { return AlgorithmMD5 }

// Sum computes MD5 of everything read from r.
func (MD5) Sum(r io.Reader) (string, error) {
	return sumReader(md5.New(), r)
}

func (SHA256) Algorithm() string { return AlgorithmSHA256 }

// Sum computes SHA-256 of everything read from r.
func (SHA256) Sum(r io.Reader) (string, error) {
	return sumReader(sha256.New(), r)
}

func sumReader(h hash.Hash, r io.Reader) (string, error) {
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
