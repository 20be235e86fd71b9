package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Untouched opener.</w:t></w:r></w:p>
    <w:p>
      <w:r><w:t xml:space="preserve">A </w:t></w:r>
      <w:ins w:id="1"><w:r><w:t xml:space="preserve">bold </w:t></w:r></w:ins>
      <w:r><w:t>claim.</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func writeFixtureDocx(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "draft.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(fixtureDocumentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_NoArguments(t *testing.T) {
	if code := run(nil); code != exitUsage {
		t.Errorf("expected usage exit code %d, got %d", exitUsage, code)
	}
}

func TestRun_TooManyArguments(t *testing.T) {
	if code := run([]string{"a.docx", "b.docx"}); code != exitUsage {
		t.Errorf("expected usage exit code %d, got %d", exitUsage, code)
	}
}

func TestRun_MissingDocument(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"-out", dir, filepath.Join(dir, "absent.docx")})
	if code != exitError {
		t.Errorf("expected error exit code %d, got %d", exitError, code)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"-config", filepath.Join(dir, "absent.yaml"), "draft.docx"})
	if code != exitUsage {
		t.Errorf("expected usage exit code %d, got %d", exitUsage, code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte("context_level: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code := run([]string{"-config", cfgPath, "draft.docx"})
	if code != exitUsage {
		t.Errorf("expected usage exit code %d, got %d", exitUsage, code)
	}
}

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	doc := writeFixtureDocx(t, dir)

	code := run([]string{"-out", dir, "-context", "1", doc})
	if code != exitOK {
		t.Fatalf("expected success, got exit code %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, "proofread_instructions.txt"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}

	body := string(data)
	if !strings.Contains(body, "{A **bold **claim.}") {
		t.Errorf("focal paragraph missing from report:\n%s", body)
	}
	if !strings.Contains(body, "Untouched opener.") {
		t.Errorf("context paragraph missing from report:\n%s", body)
	}
	if !strings.Contains(body, "!NONE!") {
		t.Errorf("no-comments sentinel missing from report:\n%s", body)
	}
}

func TestRun_DeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	doc := writeFixtureDocx(t, dir)

	if code := run([]string{"-out", dir, doc}); code != exitOK {
		t.Fatalf("first run failed with %d", code)
	}
	first, err := os.ReadFile(filepath.Join(dir, "proofread_instructions.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if code := run([]string{"-out", dir, doc}); code != exitOK {
		t.Fatalf("second run failed with %d", code)
	}
	second, err := os.ReadFile(filepath.Join(dir, "proofread_instructions.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("two runs with identical arguments must be byte-identical")
	}
}
