package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	testVolumeFname  = "source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz"
	testSurfaceFname = "source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii"
	testRelPath      = "HCP/thickness/fsLR"
	abcMD5           = "900150983cd24fb0d6963f7d28e17f72"
	abcSHA256        = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
)

// createTestProject writes files (relative path -> content) into a temporary directory.
func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// isolateEnv clears the dsanno environment variables for the duration of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envRoot, envChecksum, "NO_COLOR", "CI"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func resetAllFlags() {
	resetDecodeFlags()
	resetNormalizeFlags()
	resetDescribeFlags()
	resetReleaseFlags()
	resetScanFlags()
	resetValidateFlags()
	resetInitFlags()
	_ = rootCmd.PersistentFlags().Set("verbose", "false")
	_ = rootCmd.PersistentFlags().Set("project", ".")
}

// executeCommand runs the root command with args and captures its output streams.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolateEnv(t)
	resetAllFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetAllFlags()
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}
