// Package files groups the dataset file access of dsanno into sub-packages:
//   - filesystem: Filesystem abstraction with OS and in-memory implementations
//   - scanner: Derivative file discovery and filename decoding
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/dsanno/internal/filename"
//	    "github.com/vvka-141/dsanno/internal/files/scanner"
//	    "github.com/vvka-141/dsanno/internal/schema"
//	)
//
//	s := scanner.NewScanner(filename.NewCodec(schema.Default()))
//	result, err := s.ScanDirectory("./maps")
//
// Completion and the document store take a filesystem.FileSystemProvider, so
// tests run against filesystem.NewMemoryFileSystem instead of the disk.
package files
