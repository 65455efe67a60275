package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/internal/document"
	"github.com/vvka-141/dsanno/internal/files/filesystem"
	"github.com/vvka-141/dsanno/internal/schema"
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

func TestDecodeCmd_Table(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode", testSurfaceFname, "maps/"+testVolumeFname)
	require.NoError(t, err)

	assert.Contains(t, stdout, "SOURCE")
	assert.Contains(t, stdout, "HEMI")
	assert.Contains(t, stdout, "32k")
	assert.Contains(t, stdout, "2mm")
}

func TestDecodeCmd_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode", testSurfaceFname, "--json")
	require.NoError(t, err)

	dir := createTestProject(t, map[string]string{"out.json": stdout})
	records, err := document.NewJSONStore(filesystem.NewOSFileSystem()).Read(filepath.Join(dir, "out.json"), schema.SectionAnnotations)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"source", "desc", "space", "den", "hemi"}, records[0].Keys())
	assert.Equal(t, "L", records[0].Get("hemi").String())
}

func TestDecodeCmd_MalformedStillPrintsValid(t *testing.T) {
	stdout, _, err := executeCommand(t, "decode", testVolumeFname, "source-HCP_desc-a-b_feature.nii.gz")
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitMalformedFilename, dsanno.ExitCodeForError(err))
	assert.Contains(t, stdout, "2mm")
}

func TestDecodeCmd_ListFile(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"files.txt": strings.Join([]string{testSurfaceFname, "", testVolumeFname}, "\n"),
	})

	stdout, _, err := executeCommand(t, "decode", "--list", filepath.Join(dir, "files.txt"), "--json")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, `"source": "HCP"`))
}

func TestDecodeCmd_ListStdin(t *testing.T) {
	isolateEnv(t)
	resetAllFlags()
	defer resetAllFlags()

	decodeFlags.list = "-"
	decodeFlags.json = true
	var stdout strings.Builder
	decodeCmd.SetIn(strings.NewReader(testVolumeFname + "\n"))
	decodeCmd.SetOut(&stdout)
	defer func() {
		decodeCmd.SetIn(nil)
		decodeCmd.SetOut(nil)
	}()

	require.NoError(t, runDecode(decodeCmd, nil))
	assert.Contains(t, stdout.String(), `"res": "2mm"`)
}

func TestDecodeCmd_MissingInput(t *testing.T) {
	_, _, err := executeCommand(t, "decode")
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitUsageError, dsanno.ExitCodeForError(err))
}

func TestDecodeCmd_ListNotFound(t *testing.T) {
	_, _, err := executeCommand(t, "decode", "--list", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open filename list")
}
