package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/internal/filename"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

const (
	surfaceL = "HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii"
	volume   = "neurosynth/cogpc1/MNI152/source-neurosynth_desc-cogpc1_space-MNI152_res-2mm_feature.nii.gz"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/data")
	return NewScannerWithFS(filename.NewCodec(schema.Default()), fs), fs
}

func TestNewScannerWithFS_NilArgs(t *testing.T) {
	codec := filename.NewCodec(schema.Default())
	fs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil codec", func() { NewScannerWithFS(nil, fs) }},
		{"nil filesystem", func() { NewScannerWithFS(codec, nil) }},
		{"nil codec with OS filesystem", func() { NewScanner(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestScanDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile(surfaceL, "gifti")
	fs.AddFile(volume, "nifti")
	fs.AddFile("annotations.json", "{}")
	fs.AddFile("HCP/README.md", "# HCP")

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, []string{"HCP/README.md", "annotations.json"}, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Misplaced())

	surface := result.Entries[0]
	assert.Equal(t, surfaceL, surface.Path)
	assert.Equal(t, dsanno.FormatSurface, surface.Format)
	assert.Equal(t, int64(5), surface.SizeBytes)
	assert.Equal(t, []string{"source", "desc", "space", "den", "hemi", "format"}, surface.Record.Keys())
	assert.Equal(t, "surface", surface.Record.Get("format").String())

	vol := result.Entries[1]
	assert.Equal(t, dsanno.FormatVolume, vol.Format)
	assert.Equal(t, "2mm", vol.Record.Get("res").String())

	records := result.Records()
	require.Len(t, records, 2)
	assert.True(t, records[1].Equal(vol.Record))
}

func TestScanDirectory_MalformedNamesDoNotStopScan(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("HCP/thickness/fsLR/thickness_left.shape.gii", "x")
	fs.AddFile(volume, "nifti")

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)

	assert.Len(t, result.Entries, 1)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], dsanno.ErrMalformedFilename))
	assert.Contains(t, result.Errors[0].Error(), "thickness_left.shape.gii")
}

func TestScanDirectory_Misplaced(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("incoming/source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz", "x")
	fs.AddFile("source-HCP_desc-myelin_space-fsLR_res-2mm_feature.nii.gz", "x")

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)

	misplaced := result.Misplaced()
	require.Len(t, misplaced, 2)
	assert.Equal(t, "incoming/source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz", misplaced[0].Path)
}

func TestScanDirectory_IgnoresHidden(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile(".git/objects/source-HCP_desc-x_space-y_res-1mm_feature.nii.gz", "x")
	fs.AddFile("HCP/.source-HCP_desc-x_space-y_res-1mm_feature.nii.gz", "x")

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestScanDirectory_UppercaseExtension(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_res-2mm_feature.NII.GZ", "x")

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, dsanno.FormatVolume, result.Entries[0].Format)
}

func TestScanDirectory_EmptyDirectory(t *testing.T) {
	s, _ := newTestScanner()

	result, err := s.ScanDirectory("/data")
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.NotNil(t, result.Records())
}

func TestScanDirectory_NonexistentPath(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ScanDirectory("/nonexistent")
	assert.Error(t, err)
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, ".shape.gii", extensionOf("a.shape.gii"))
	assert.Equal(t, ".nii.gz", extensionOf("a.nii.gz"))
	assert.Equal(t, "", extensionOf("Makefile"))
}
