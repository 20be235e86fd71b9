// Command docx-proofreader extracts tracked changes and reviewer comments
// from a .docx document and writes proofread_instructions.txt: a flat,
// paragraph-by-paragraph report for a downstream proofreading workflow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndresRCA/docx-proofreader/internal/adapters/docx"
	"github.com/AndresRCA/docx-proofreader/internal/adapters/filewatcher"
	"github.com/AndresRCA/docx-proofreader/internal/adapters/report"
	"github.com/AndresRCA/docx-proofreader/internal/config"
	"github.com/AndresRCA/docx-proofreader/internal/domain/usecases"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("docx-proofreader", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: docx-proofreader [flags] <document.docx>\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		flagOut     = fs.String("out", "", "output directory for proofread_instructions.txt (default: current directory)")
		flagContext = fs.Int("context", 0, "number of surrounding paragraphs shown around each reported paragraph")
		flagConfig  = fs.String("config", "", "path to a YAML config file (default: ./"+config.DefaultFile+" if present)")
		flagWatch   = fs.Bool("watch", false, "keep running and regenerate the report whenever the document changes")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	docPath := fs.Arg(0)

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if *flagOut != "" {
		cfg.OutputDir = *flagOut
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "context" {
			cfg.ContextLevel = *flagContext
		}
	})
	if cfg.ContextLevel < 0 {
		fmt.Fprintln(os.Stderr, "context level must be >= 0")
		return exitUsage
	}

	uc := usecases.NewExtractUseCase(
		docx.NewLoader(),
		report.NewFileWriter(cfg.OutputDir),
		cfg.ContextLevel,
		usecases.Markers{
			InsertOpen:  cfg.Markers.InsertOpen,
			InsertClose: cfg.Markers.InsertClose,
			DeleteOpen:  cfg.Markers.DeleteOpen,
			DeleteClose: cfg.Markers.DeleteClose,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *flagWatch {
		watcher, err := filewatcher.NewFSNotifyWatcher()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitError
		}
		defer watcher.Stop()

		log.Printf("[INFO] watching %s", docPath)
		if err := uc.Watch(ctx, docPath, watcher); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitError
		}
		return exitOK
	}

	out, err := uc.Extract(ctx, docPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	log.Printf("[INFO] report written to %s", out)
	return exitOK
}

// loadConfig resolves the effective configuration: an explicit --config
// path must exist; otherwise the default file is used when present and the
// built-in defaults when not.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.Load(config.DefaultFile)
	}
	return config.Default(), nil
}
