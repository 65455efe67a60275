package filename

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Codec maps annotation records to canonical derivative filenames and back.
// Codec holds no mutable state and is safe for concurrent use.
type Codec struct {
	schema *schema.Schema
}

// NewCodec creates a codec for the given schema.
// Panics if s is nil.
func NewCodec(s *schema.Schema) *Codec {
	if s == nil {
		panic("schema cannot be nil")
	}
	return &Codec{schema: s}
}

// Decoded is the result of decoding a filename.
type Decoded struct {
	// Record holds the key/value pairs found in the stem, in filename order.
	Record dsanno.Record

	// Extension is everything after the first '.', with a leading dot
	// (".shape.gii", ".nii.gz"). Empty if the filename has no extension.
	Extension string
}

// Encode renders the canonical filename of r for format f:
//
//	surface: source-<source>_desc-<desc>_space-<space>_den-<den>_hemi-<hemi>_feature.shape.gii
//	volume:  source-<source>_desc-<desc>_space-<space>_res-<res>_feature.nii.gz
//
// A missing or absent field renders as dsanno.AbsentToken; the result is still
// returned so the caller can report it. Encode returns "" for an unknown format.
func (c *Codec) Encode(r dsanno.Record, f dsanno.Format) string {
	if !f.Valid() {
		return ""
	}

	keys := c.schema.IdentityKeysFor(f)
	segments := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		segments = append(segments, key+dsanno.PairSeparator+r.Get(key).String())
	}
	segments = append(segments, dsanno.SentinelSegment)

	return strings.Join(segments, dsanno.SegmentSeparator) + f.Extension()
}

// Decode parses a derivative filename into its key/value pairs.
//
// Algorithm:
//  1. Drop any directory prefix and surrounding whitespace
//  2. Split on '.': the first part is the stem, the rest is the extension
//  3. Split the stem on '_' into segments
//  4. Skip the sentinel segment "feature"
//  5. Split every other segment on '-' into exactly one key and one value
//
// Decode does not infer the format; see FormatForExtension.
//
// Error cases (all *FilenameError, matching dsanno.ErrMalformedFilename):
//   - Empty filename
//   - A segment without exactly one '-' separator
//   - A segment with an empty key
func (c *Codec) Decode(name string) (Decoded, error) {
	base := strings.TrimSpace(name)
	base = path.Base(filepath.ToSlash(base))
	if base == "" || base == "." || base == "/" {
		return Decoded{}, &FilenameError{
			Filename: name,
			Message:  "filename is empty",
			Hint:     conventionHint,
		}
	}

	parts := strings.Split(base, dsanno.ExtensionSeparator)
	stem := parts[0]
	var extension string
	if len(parts) > 1 {
		extension = dsanno.ExtensionSeparator + strings.Join(parts[1:], dsanno.ExtensionSeparator)
	}

	var record dsanno.Record
	for _, segment := range strings.Split(stem, dsanno.SegmentSeparator) {
		if segment == dsanno.SentinelSegment {
			continue
		}

		pair := strings.Split(segment, dsanno.PairSeparator)
		if len(pair) != 2 {
			return Decoded{}, &FilenameError{
				Filename: name,
				Segment:  segment,
				Message:  fmt.Sprintf("expected exactly one %q separator, found %d", dsanno.PairSeparator, len(pair)-1),
				Hint:     conventionHint,
			}
		}
		if pair[0] == "" {
			return Decoded{}, &FilenameError{
				Filename: name,
				Segment:  segment,
				Message:  "segment has an empty key",
				Hint:     conventionHint,
			}
		}

		record.SetString(pair[0], pair[1])
	}

	return Decoded{Record: record, Extension: extension}, nil
}

// ParseList decodes one filename per line from r. Blank lines are skipped.
//
// Lines that fail to decode do not stop the scan: every successfully decoded
// line is returned together with the joined errors of the failing lines, each
// carrying its line number.
func (c *Codec) ParseList(r io.Reader) ([]Decoded, error) {
	var (
		decoded []Decoded
		errs    []error
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		d, err := c.Decode(line)
		if err != nil {
			var fnErr *FilenameError
			if errors.As(err, &fnErr) {
				fnErr.Line = lineNum
			}
			errs = append(errs, err)
			continue
		}
		decoded = append(decoded, d)
	}

	if err := scanner.Err(); err != nil {
		return decoded, fmt.Errorf("error reading filename list: %w", err)
	}

	return decoded, errors.Join(errs...)
}

// FormatForExtension maps a decoded extension to the format it is stored as.
// Unrecognized extensions return dsanno.FormatUnknown.
func FormatForExtension(ext string) dsanno.Format {
	switch strings.ToLower(ext) {
	case dsanno.SurfaceExtension:
		return dsanno.FormatSurface
	case dsanno.VolumeExtension:
		return dsanno.FormatVolume
	default:
		return dsanno.FormatUnknown
	}
}
