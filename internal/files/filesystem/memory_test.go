package filesystem

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Basic(t *testing.T) {
	mfs := NewMemoryFileSystem("/data/maps")

	mfs.AddFile("HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii", "L")
	mfs.AddFile("HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_den-32k_hemi-R_feature.shape.gii", "R")

	dir, err := mfs.Open("/data/maps")
	require.NoError(t, err, "Failed to open root directory")
	require.NotNil(t, dir)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii",
		"HCP/thickness/fsLR/source-HCP_desc-thickness_space-fsLR_den-32k_hemi-R_feature.shape.gii",
	}, files)
}

func TestMemoryFileSystem_Walk_CreatesParentDirectories(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a/b/c.json", "{}")

	for _, p := range []string{"/data/a", "/data/a/b"} {
		info, err := mfs.Stat(p)
		require.NoError(t, err, p)
		assert.True(t, info.IsDir(), p)
	}
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")

	expectedContent := `{"ds-annotations": []}`
	mfs.AddFile("annotations.json", expectedContent)

	content, err := mfs.ReadFile("/test/project/annotations.json")
	require.NoError(t, err)
	require.Equal(t, expectedContent, string(content))

	// Relative paths resolve against the root
	content, err = mfs.ReadFile("annotations.json")
	require.NoError(t, err)
	require.Equal(t, expectedContent, string(content))
}

func TestMemoryFileSystem_ReadFile_Errors(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("sub/file.json", "{}")

	_, err := mfs.ReadFile("missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.ReadFile("sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("annotations.json", "{}")

	info, err := mfs.Stat("/test/project/annotations.json")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, "annotations.json", info.Name())
	require.Equal(t, int64(2), info.Size())

	info, err = mfs.Stat("/test/project")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = mfs.Stat("nope")
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_OpenFile_TracksHandles(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("map.nii.gz", "voxels")

	rc, err := mfs.OpenFile("map.nii.gz")
	require.NoError(t, err)
	assert.Equal(t, 1, mfs.OpenHandles())

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "voxels", string(data))

	require.NoError(t, rc.Close())
	require.NoError(t, rc.Close(), "second Close is a no-op")
	assert.Equal(t, 0, mfs.OpenHandles())
}

func TestMemoryFileSystem_OpenFile_Missing(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")

	_, err := mfs.OpenFile("map.nii.gz")
	require.Error(t, err)
	assert.Equal(t, 0, mfs.OpenHandles())
}

func TestMemoryFileSystem_FailReads(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("map.nii.gz", "voxels")
	injected := errors.New("device error")
	mfs.FailReads("map.nii.gz", injected)

	rc, err := mfs.OpenFile("/data/map.nii.gz")
	require.NoError(t, err)
	defer rc.Close()

	_, err = io.ReadAll(rc)
	assert.ErrorIs(t, err, injected)
}

func TestMemoryFileSystem_FailReadsAppliesToCopy(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("map.nii.gz", "voxels")
	injected := errors.New("device error")
	mfs.FailReads("map.nii.gz", injected)

	rc, err := mfs.OpenFile("map.nii.gz")
	require.NoError(t, err)
	defer rc.Close()

	_, isWriterTo := rc.(io.WriterTo)
	assert.False(t, isWriterTo, "io.Copy must go through Read")

	var sink bytes.Buffer
	n, err := io.Copy(&sink, rc)
	assert.ErrorIs(t, err, injected)
	assert.Zero(t, n)
}

func TestMemoryFileSystem_WriteFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")

	require.NoError(t, mfs.WriteFile("release/out.json", []byte("first")))
	require.NoError(t, mfs.WriteFile("release/out.json", []byte("second")))

	content, err := mfs.ReadFile("/data/release/out.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	info, err := mfs.Stat("release")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	err = mfs.WriteFile("release", []byte("x"))
	assert.Error(t, err, "writing over a directory must fail")
}

func TestMemoryFileSystem_Open_NotDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("map.nii.gz", "voxels")

	_, err := mfs.Open("map.nii.gz")
	assert.Error(t, err)

	_, err = mfs.Open("missing")
	assert.Error(t, err)
}
