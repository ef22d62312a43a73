package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileScanner(t *testing.T) {
	scanner := NewFileScanner("/tmp/test")
	assert.Equal(t, "/tmp/test", scanner.BaseDir())
	assert.Equal(t, ".jsonl", scanner.suffix)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude", "projects"), NewFileScanner(DefaultDir).BaseDir())
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner(filepath.Join(t.TempDir(), "does", "not", "exist")).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanWithJSONLFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		path    string
		isJSONL bool
	}{
		{"session1.jsonl", true},
		{"session2.jsonl", true},
		{"session3.JSONL", true},
		{"data.json", false},
		{"readme.txt", false},
		{"subdir/session4.jsonl", true},
		{"subdir/other.log", false},
	}

	var expected []string
	for _, file := range testFiles {
		fullPath := filepath.Join(tempDir, file.path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte("{}\n"), 0o644))
		if file.isJSONL {
			expected = append(expected, fullPath)
		}
	}

	files, err := NewFileScanner(tempDir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)
	assert.IsNonDecreasing(t, files)
}
