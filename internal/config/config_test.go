package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ContextLevel != 0 {
		t.Errorf("default context level should be 0, got %d", cfg.ContextLevel)
	}
	if cfg.OutputDir != "." {
		t.Errorf("default output dir should be the working directory, got %q", cfg.OutputDir)
	}
	if cfg.Markers.InsertOpen != "**" || cfg.Markers.DeleteOpen != "--" {
		t.Errorf("unexpected default markers %+v", cfg.Markers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("context_level: 2\noutput_dir: ./out\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if cfg.ContextLevel != 2 {
		t.Errorf("expected context level 2, got %d", cfg.ContextLevel)
	}
	if cfg.OutputDir != "./out" {
		t.Errorf("expected output dir ./out, got %q", cfg.OutputDir)
	}
	// Untouched fields keep their defaults.
	if cfg.Markers.InsertOpen != "**" {
		t.Errorf("markers should keep defaults, got %+v", cfg.Markers)
	}
}

func TestParse_CustomMarkers(t *testing.T) {
	payload := `
markers:
  insert_open: "<ins>"
  insert_close: "</ins>"
  delete_open: "<del>"
  delete_close: "</del>"
`
	cfg, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Markers.InsertOpen != "<ins>" || cfg.Markers.DeleteClose != "</del>" {
		t.Errorf("custom markers not applied: %+v", cfg.Markers)
	}
}

func TestParse_RejectsNegativeContextLevel(t *testing.T) {
	if _, err := Parse([]byte("context_level: -1\n")); err == nil {
		t.Error("negative context level must be rejected")
	}
}

func TestParse_RejectsEmptyMarker(t *testing.T) {
	payload := `
markers:
  insert_open: ""
  insert_close: "**"
  delete_open: "--"
  delete_close: "--"
`
	if _, err := Parse([]byte(payload)); err == nil {
		t.Error("empty marker string must be rejected")
	}
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("context_level: [not an int\n")); err == nil {
		t.Error("malformed YAML must be rejected")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docx-proofreader.yaml")
	if err := os.WriteFile(path, []byte("context_level: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ContextLevel != 3 {
		t.Errorf("expected context level 3, got %d", cfg.ContextLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
