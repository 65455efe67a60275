package scanner

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/vvka-141/dsanno/internal/completion"
	"github.com/vvka-141/dsanno/internal/filename"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Entry is a derivative file found under the dataset root.
type Entry struct {
	// Path is relative to the dataset root, with forward slashes.
	Path string

	// Record holds the decoded identity keys followed by "format", which is
	// taken from the file extension.
	Record dsanno.Record

	Format     dsanno.Format
	SizeBytes  int64
	ModifiedAt time.Time

	// Misplaced is set when the file does not live in the directory its
	// identity keys name ("{source}/{desc}/{space}/"), so completion will not
	// find it to compute a checksum.
	Misplaced bool
}

// Result is the outcome of a scan.
type Result struct {
	Entries []Entry

	// Skipped lists files whose extension is not a derivative format.
	Skipped []string

	// Errors holds a *filename.FilenameError per derivative file whose name
	// violates the convention. They do not stop the scan.
	Errors []error
}

// Records returns the record of every entry, in scan order.
func (r Result) Records() []dsanno.Record {
	records := make([]dsanno.Record, 0, len(r.Entries))
	for _, e := range r.Entries {
		records = append(records, e.Record)
	}
	return records
}

// Misplaced returns the entries stored outside their canonical directory.
func (r Result) Misplaced() []Entry {
	var entries []Entry
	for _, e := range r.Entries {
		if e.Misplaced {
			entries = append(entries, e)
		}
	}
	return entries
}

// Scanner discovers derivative files in a dataset tree and decodes their names.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	codec      *filename.Codec
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new scanner using the OS filesystem.
// Panics if codec is nil.
func NewScanner(codec *filename.Codec) *Scanner {
	return NewScannerWithFS(codec, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if codec or fsProvider is nil.
func NewScannerWithFS(codec *filename.Codec, fsProvider filesystem.FileSystemProvider) *Scanner {
	if codec == nil {
		panic("codec cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		codec:      codec,
		fsProvider: fsProvider,
	}
}

// ScanDirectory recursively scans a dataset root for derivative files.
//
// Hidden files and files in hidden directories are ignored. Files with other
// extensions are listed in Result.Skipped. Malformed derivative filenames are
// collected in Result.Errors; only failures to walk the tree return an error.
func (s *Scanner) ScanDirectory(root string) (Result, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var result Result
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		if file.Info().IsDir() {
			return nil
		}

		relPath := file.RelativePath()
		if isHidden(relPath) {
			return nil
		}

		format := filename.FormatForExtension(extensionOf(path.Base(relPath)))
		if format == dsanno.FormatUnknown {
			result.Skipped = append(result.Skipped, relPath)
			return nil
		}

		decoded, err := s.codec.Decode(relPath)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}

		record := decoded.Record
		record.SetString(schema.KeyFormat, string(format))

		dirPath := path.Dir(relPath) + "/"
		result.Entries = append(result.Entries, Entry{
			Path:       relPath,
			Record:     record,
			Format:     format,
			SizeBytes:  file.Info().Size(),
			ModifiedAt: file.Info().ModTime(),
			Misplaced:  dirPath != completion.RelPath(record),
		})
		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

// extensionOf returns everything from the first '.', matching Decode.
func extensionOf(base string) string {
	if i := strings.Index(base, dsanno.ExtensionSeparator); i >= 0 {
		return base[i:]
	}
	return ""
}

func isHidden(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
