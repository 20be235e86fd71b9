package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AndresRCA/docx-proofreader/internal/domain/ports"
)

// debounceWindow swallows the duplicate create/write events editors fire
// when they replace a document on save.
const debounceWindow = 250 * time.Millisecond

// ExtractUseCase drives the whole pipeline: load the document, annotate
// its paragraphs, format the report, write it out.
type ExtractUseCase struct {
	loader       ports.DocumentLoader
	writer       ports.ReportWriter
	contextLevel int
	markers      Markers
}

// NewExtractUseCase creates an ExtractUseCase with injected adapters.
func NewExtractUseCase(
	loader ports.DocumentLoader,
	writer ports.ReportWriter,
	contextLevel int,
	markers Markers,
) *ExtractUseCase {
	if contextLevel < 0 {
		contextLevel = 0
	}
	if markers == (Markers{}) {
		markers = DefaultMarkers()
	}
	return &ExtractUseCase{
		loader:       loader,
		writer:       writer,
		contextLevel: contextLevel,
		markers:      markers,
	}
}

// Extract runs the pipeline once for the document at path and returns the
// path of the written report. Any load or write failure is fatal to this
// invocation; there is no retry.
func (uc *ExtractUseCase) Extract(ctx context.Context, path string) (string, error) {
	doc, err := uc.loader.Load(ctx, path)
	if err != nil {
		return "", fmt.Errorf("loading document: %w", err)
	}

	records := AnnotateAll(doc, uc.markers)
	body := FormatReport(records, uc.contextLevel)

	out, err := uc.writer.Write(body)
	if err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return out, nil
}

// Watch runs Extract once, then re-runs it every time the document changes,
// until ctx is done. Extractions are sequential and in event order. A failed
// re-extraction is logged and the loop continues - the next save may produce
// a readable document again.
func (uc *ExtractUseCase) Watch(ctx context.Context, path string, watcher ports.FileWatcher) error {
	out, err := uc.Extract(ctx, path)
	if err != nil {
		return err
	}
	log.Printf("[INFO] report written to %s", out)

	events, err := watcher.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	var lastRun time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Operation == ports.FileDeleted {
				continue
			}
			if time.Since(lastRun) < debounceWindow {
				continue
			}
			lastRun = time.Now()

			out, err := uc.Extract(ctx, path)
			if err != nil {
				log.Printf("[WARN] re-extraction failed: %v", err)
				continue
			}
			log.Printf("[INFO] report written to %s", out)
		}
	}
}
