package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

const completeDoc = `{
    "ds-annotations": [
        {
            "source": "HCP", "desc": "thickness", "space": "fsLR",
            "den": null, "hemi": null, "res": "2mm",
            "format": "volume", "fname": "source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz",
            "rel_path": "HCP/thickness/fsLR/", "checksum": null,
            "title": "Cortical thickness", "tags": ["cortex"], "redir": false, "url": null
        }
    ]
}`

func TestDescribeCmd_Complete(t *testing.T) {
	dir := createTestProject(t, map[string]string{"release.json": completeDoc})

	stdout, _, err := executeCommand(t, "describe", filepath.Join(dir, "release.json"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "all keys present")
	assert.Contains(t, stdout, "ok")
}

func TestDescribeCmd_Incomplete(t *testing.T) {
	dir := createTestProject(t, map[string]string{"fillable.json": fillableDoc})

	stdout, _, err := executeCommand(t, "describe", filepath.Join(dir, "fillable.json"))
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitIncomplete, dsanno.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "2 of 2 record(s)")
	assert.Contains(t, stdout, "MISSING")
	assert.Contains(t, stdout, "incomplete")
}

func TestDescribeCmd_JSON(t *testing.T) {
	dir := createTestProject(t, map[string]string{"fillable.json": fillableDoc})

	stdout, _, err := executeCommand(t, "describe", filepath.Join(dir, "fillable.json"), "--schema", "info", "--json")
	require.Error(t, err)

	var result struct {
		Records    int                       `json:"records"`
		Incomplete int                       `json:"incomplete"`
		Counts     map[string]map[string]int `json:"counts"`
		Rows       []struct {
			Index   int      `json:"index"`
			Missing []string `json:"missing"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 1, result.Records)
	assert.Equal(t, 1, result.Incomplete)
	assert.Equal(t, []string{"comments", "demographics"}, result.Rows[0].Missing)
	assert.Equal(t, 1, result.Counts["source"]["set"])
}

func TestDescribeCmd_UnknownSchema(t *testing.T) {
	_, _, err := executeCommand(t, "describe", "whatever.json", "--schema", "nope")
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitSchemaError, dsanno.ExitCodeForError(err))
}
