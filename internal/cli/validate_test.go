package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

func TestValidateCmd_Valid(t *testing.T) {
	dir := createTestProject(t, map[string]string{"fillable.json": fillableDoc})

	_, stderr, err := executeCommand(t, "validate", filepath.Join(dir, "fillable.json"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "✓ 2 record(s) valid")
}

func TestValidateCmd_Problems(t *testing.T) {
	dir := createTestProject(t, map[string]string{"fillable.json": `{"ds-annotations": [
        {"source": "HCP", "desc": "thickness", "space": "fsLR", "res": "2mm"},
        {"source": "HCP", "desc": "thickness", "space": "fsLR", "res": "2mm"},
        {"source": "HCP", "title": "no shape"}
    ]}`})

	stdout, _, err := executeCommand(t, "validate", filepath.Join(dir, "fillable.json"), "--json")
	require.Error(t, err)
	assert.Equal(t, dsanno.ExitClassification, dsanno.ExitCodeForError(err))
	assert.ErrorIs(t, err, dsanno.ErrDuplicate)

	var result struct {
		Records  int  `json:"records"`
		Valid    bool `json:"valid"`
		Problems []struct {
			Index int    `json:"index"`
			Kind  string `json:"kind"`
		} `json:"problems"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 3, result.Records)
	assert.False(t, result.Valid)
	require.Len(t, result.Problems, 2)
	assert.Equal(t, 2, result.Problems[0].Index)
	assert.Equal(t, "unclassifiable", result.Problems[0].Kind)
	assert.Equal(t, 1, result.Problems[1].Index)
	assert.Equal(t, "duplicate", result.Problems[1].Kind)
}

func TestValidateCmd_DoesNotTouchDataset(t *testing.T) {
	checker := offlineChecker{}
	assert.False(t, checker.Exists("/etc/hosts"))
	_, err := checker.Digest("/etc/hosts")
	assert.Error(t, err)
}
