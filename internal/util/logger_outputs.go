package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// LogFormat represents the output format
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// WriterOutput writes entries to an io.Writer, one per line.
type WriterOutput struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	format LogFormat
}

// NewConsoleOutput writes to w (usually os.Stderr). Close leaves w open.
func NewConsoleOutput(w io.Writer, format LogFormat) *WriterOutput {
	return &WriterOutput{w: w, format: format}
}

// NewFileOutput appends to path, creating parent directories as needed.
func NewFileOutput(path string, format LogFormat) (*WriterOutput, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &WriterOutput{w: f, closer: f, format: format}, nil
}

func (o *WriterOutput) Write(entry LogEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(o.w, string(data))
		return err
	}
	_, err := fmt.Fprintln(o.w, entry.text())
	return err
}

func (o *WriterOutput) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}
