package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

func TestScanCmd_WritesFillableDocument(t *testing.T) {
	root := createTestProject(t, map[string]string{
		testRelPath + "/" + testVolumeFname: "abc",
		testSurfaceFname:                    "surface",
		"README.md":                         "# maps",
		".cache/" + testVolumeFname:         "hidden",
	})
	output := filepath.Join(t.TempDir(), "fillable.json")

	_, stderr, err := executeCommand(t, "scan", root, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, stderr, "✓ Wrote 2 record(s)")
	assert.Contains(t, stderr, "is not under its canonical directory HCP/thickness/fsLR/")

	records := readRelease(t, output)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.True(t, r.Get("format").IsSet())
	}
}

func TestScanCmd_Table(t *testing.T) {
	root := createTestProject(t, map[string]string{
		testRelPath + "/" + testVolumeFname: "abc",
	})

	stdout, _, err := executeCommand(t, "scan", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FORMAT")
	assert.Contains(t, stdout, "volume")
}

func TestScanCmd_MalformedName(t *testing.T) {
	root := createTestProject(t, map[string]string{
		testRelPath + "/" + testVolumeFname:  "abc",
		"source-HCP_desc-a-b_feature.nii.gz": "bad",
	})

	stdout, _, err := executeCommand(t, "scan", root)
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitMalformedFilename, dsanno.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "1 of 2 derivative file(s)")
	assert.Contains(t, stdout, "2mm", "well-formed files are still listed")
}

func TestScanCmd_EmptyRoot(t *testing.T) {
	_, stderr, err := executeCommand(t, "scan", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stderr, "No derivative files found")
}

func TestScanCmd_NonexistentRoot(t *testing.T) {
	_, _, err := executeCommand(t, "scan", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
