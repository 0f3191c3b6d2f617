package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phobologic/jdocref/internal/config"
)

func TestInitCreatesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-C", dir, "init", "--prefix", "edu.duke.osprey"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PackagePrefix != "edu.duke.osprey" {
		t.Errorf("prefix = %q", cfg.PackagePrefix)
	}
	if cfg.APIPrefix != "api" {
		t.Errorf("api prefix = %q", cfg.APIPrefix)
	}
	if cfg.DocsDir != filepath.Join(dir, "doc") {
		t.Errorf("docs dir = %q", cfg.DocsDir)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, config.FileName, "sources_dir: java\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-C", dir, "init"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite error, got %v", err)
	}

	if err := run([]string{"-C", dir, "init", "--force", "--sources", "src/main/java"}, &stdout, &stderr); err != nil {
		t.Fatalf("run --force: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, config.FileName))
	if !strings.Contains(string(data), "sources_dir: src/main/java") {
		t.Errorf("config not rewritten:\n%s", data)
	}
}

func TestInitDryRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-C", dir, "init", "--dry-run"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		t.Error("--dry-run should not create the file")
	}
	for _, want := range []string{"sources_dir:", "api_prefix: api", "docs_dir: doc"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("dry-run output missing %q:\n%s", want, stdout.String())
		}
	}
}
