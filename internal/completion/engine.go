package completion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dsanno/internal/filename"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Engine completes annotation records against a dataset root.
// Engine holds no mutable state and is safe for concurrent use when its
// FileChecker and Logger are.
type Engine struct {
	schema  *schema.Schema
	codec   *filename.Codec
	checker dsanno.FileChecker
	root    string
	logger  dsanno.Logger
}

// NewEngine creates an engine that resolves rel_path + fname under root.
// An empty root resolves relative to the working directory.
// Panics if s, checker or logger is nil.
func NewEngine(s *schema.Schema, checker dsanno.FileChecker, root string, logger dsanno.Logger) *Engine {
	if s == nil {
		panic("schema cannot be nil")
	}
	if checker == nil {
		panic("checker cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Engine{
		schema:  s,
		codec:   filename.NewCodec(s),
		checker: checker,
		root:    root,
		logger:  logger,
	}
}

// Classify determines the format of r.
//
// A record is a surface map if "den" or "hemi" is truthy or "format" is
// "surface". Otherwise it is a volume map if "res" is truthy or "format" is
// "volume". Surface is checked first, so a record carrying both kinds of keys
// is a surface map.
func (e *Engine) Classify(r dsanno.Record) (dsanno.Format, error) {
	declared, _ := r.Get(schema.KeyFormat).Text()

	switch {
	case r.Get(schema.KeyDen).Truthy() || r.Get(schema.KeyHemi).Truthy() || declared == string(dsanno.FormatSurface):
		return dsanno.FormatSurface, nil
	case r.Get(schema.KeyRes).Truthy() || declared == string(dsanno.FormatVolume):
		return dsanno.FormatVolume, nil
	default:
		return dsanno.FormatUnknown, e.recordError(r, -1, "cannot classify as surface or volume",
			classificationHint, dsanno.ErrClassification)
	}
}

// Complete returns a new record with format, fname, rel_path and checksum
// derived from r, inapplicable keys removed and the key set reduced to the
// minimal schema.
//
// If r cannot be classified, or its file exists but cannot be digested, r is
// returned unchanged together with a *RecordError.
func (e *Engine) Complete(r dsanno.Record) (dsanno.Record, error) {
	return e.complete(r, -1)
}

func (e *Engine) complete(r dsanno.Record, index int) (dsanno.Record, error) {
	format, err := e.Classify(r)
	if err != nil {
		var recErr *RecordError
		if errors.As(err, &recErr) {
			recErr.Index = index
		}
		e.logger.Verbose("%s", firstLine(err))
		return r, err
	}

	out := r.Clone()
	out.SetString(schema.KeyFormat, string(format))

	fname := e.codec.Encode(out, format)
	relPath := RelPath(out)
	out.SetString(schema.KeyFname, fname)
	out.SetString(schema.KeyRelPath, relPath)

	path := filepath.Join(e.root, filepath.FromSlash(relPath), fname)
	if e.checker.Exists(path) {
		digest, err := e.checker.Digest(path)
		if err != nil {
			return r, e.recordError(r, index, "failed to compute checksum", digestHint, err)
		}
		e.logger.Verbose("checksum %s for %s", digest, relPath+fname)
		out.SetString(schema.KeyChecksum, digest)
	} else {
		e.logger.Verbose("no file at %s, checksum left empty", filepath.ToSlash(path))
		out.Set(schema.KeyChecksum, dsanno.Absent())
	}

	out, err = e.Clean(out)
	if err != nil {
		// Unreachable: format was set from a successful classification.
		return r, err
	}

	return out.Project(e.schema.MinimalKeys.Keys()), nil
}

// Clean removes the keys that do not apply to the record's declared format:
// "res" for surface maps, "den" and "hemi" for volume maps.
//
// If "format" is neither "surface" nor "volume", Clean returns a copy of r
// unchanged and a *RecordError wrapping dsanno.ErrInvalidFormat.
func (e *Engine) Clean(r dsanno.Record) (dsanno.Record, error) {
	declared, _ := r.Get(schema.KeyFormat).Text()
	format := dsanno.Format(declared)

	out := r.Clone()
	if !format.Valid() {
		return out, e.recordError(r, -1, fmt.Sprintf("invalid format %q, not cleaning", r.Get(schema.KeyFormat).String()),
			invalidFormatHint, dsanno.ErrInvalidFormat)
	}

	for _, key := range e.schema.InapplicableKeys(format) {
		out.Delete(key)
	}
	return out, nil
}

// CompleteAll completes every record independently.
//
// The result has one record per input at the same index; a record that fails
// is passed through unchanged. The returned errors are *RecordError values
// carrying the failing index, in input order.
func (e *Engine) CompleteAll(records []dsanno.Record) ([]dsanno.Record, []error) {
	out := make([]dsanno.Record, len(records))
	var errs []error

	for i, r := range records {
		completed, err := e.complete(r, i)
		out[i] = completed
		if err != nil {
			errs = append(errs, err)
		}
	}

	e.logger.Verbose("completed %d of %d records", len(records)-len(errs), len(records))
	return out, errs
}

// RelPath renders the directory of a record's file relative to the dataset root:
// "{source}/{desc}/{space}/". Missing values render as dsanno.AbsentToken.
func RelPath(r dsanno.Record) string {
	return r.Get(schema.KeySource).String() + "/" +
		r.Get(schema.KeyDesc).String() + "/" +
		r.Get(schema.KeySpace).String() + "/"
}

func (e *Engine) recordError(r dsanno.Record, index int, message, hint string, err error) *RecordError {
	return &RecordError{
		Index:    index,
		Identity: r.Describe(e.schema.Identity.Keys()),
		Message:  message,
		Hint:     hint,
		Err:      err,
	}
}

func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
