// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations;
// adapters implement them.
package ports

import (
	"context"

	"github.com/AndresRCA/docx-proofreader/internal/domain/entities"
)

// DocumentLoader opens a word-processing document and materializes its
// paragraphs, runs and comments as a read-only object graph.
type DocumentLoader interface {
	// Load reads the document at path. Unreadable or malformed
	// containers are fatal errors; the loader never partially succeeds.
	Load(ctx context.Context, path string) (*entities.Document, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// ReportWriter persists the rendered report body.
type ReportWriter interface {
	// Write stores the report and returns the path it was written to.
	Write(body string) (string, error)
}

// FileWatcher monitors a single document for changes.
type FileWatcher interface {
	// Watch starts monitoring the file at path and emits events until
	// ctx is done. Editors typically replace the file on save, so
	// create events for the same path are reported as well.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
