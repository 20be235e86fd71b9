// Package report provides the report persistence adapter.
// It implements ports.ReportWriter by writing the rendered body to a fixed
// filename inside the configured output directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Filename is the fixed name of the report file.
const Filename = "proofread_instructions.txt"

// FileWriter writes the report into a directory on the local file system.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a writer targeting dir. An empty dir means the
// current working directory.
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{dir: dir}
}

// Write stores the report body as UTF-8 text and returns the written path.
// An unwritable destination is a fatal error for the invocation.
func (w *FileWriter) Write(body string) (string, error) {
	path := filepath.Join(w.dir, Filename)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
