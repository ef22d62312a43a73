package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo identifies a version of a file. Two equal values mean the file
// has not changed as far as the parser cache is concerned.
type FileInfo struct {
	ModTime     int64 // UnixNano
	Size        int64
	Fingerprint uint32 // CRC32 of the last 2KB
}

const fingerprintTail = 2048

// GetFileInfo stats path and fingerprints its tail. Logs are append-only,
// so the tail catches rewrites that keep size and mtime.
func GetFileInfo(path string) (FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileInfo{}, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return FileInfo{}, err
	}

	readSize := min(stat.Size(), fingerprintTail)
	if _, err := file.Seek(-readSize, io.SeekEnd); err != nil {
		return FileInfo{}, fmt.Errorf("seeking %s: %w", path, err)
	}
	data := make([]byte, readSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return FileInfo{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return FileInfo{
		ModTime:     stat.ModTime().UnixNano(),
		Size:        stat.Size(),
		Fingerprint: crc32.ChecksumIEEE(data),
	}, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
