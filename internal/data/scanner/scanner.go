package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-claude-usage/internal/util"
)

// DefaultDir is where Claude Code keeps per-project conversation logs.
const DefaultDir = "~/.claude/projects"

// FileScanner finds conversation logs below a directory.
type FileScanner struct {
	baseDir string
	suffix  string
}

// NewFileScanner creates a scanner for baseDir. A leading "~" is expanded.
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: util.ExpandHome(baseDir),
		suffix:  ".jsonl",
	}
}

// BaseDir returns the expanded directory being scanned.
func (s *FileScanner) BaseDir() string {
	return s.baseDir
}

// Scan returns every .jsonl file below the base directory, sorted. A missing
// directory yields no files; unreadable entries are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	if _, err := os.Stat(s.baseDir); errors.Is(err, fs.ErrNotExist) {
		util.LogWarnf("Log directory does not exist: %s", s.baseDir)
		return nil, nil
	}

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}
		if d.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), s.suffix) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d JSONL files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, err
}
