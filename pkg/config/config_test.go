package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.IncludeTests {
		t.Error("IncludeTests should default to false")
	}
	if !cfg.Exclude.Gitignore {
		t.Error("Gitignore should default to true")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %s, want text", cfg.Output.Format)
	}

	found := false
	for _, d := range cfg.Exclude.Dirs {
		if d == "target" {
			found = true
		}
	}
	if !found {
		t.Error("default excludes should contain the cargo target dir")
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ferrolens.toml")
	content := `
[analysis]
include_tests = true
workers = 4

[output]
format = "json"
color = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Analysis.IncludeTests {
		t.Error("IncludeTests not loaded")
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %s, want json", cfg.Output.Format)
	}
	// Untouched sections keep their defaults.
	if !cfg.Exclude.Gitignore {
		t.Error("Gitignore default lost on partial config")
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ferrolens.yaml")
	content := `
exclude:
  dirs:
    - generated
  gitignore: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Exclude.Gitignore {
		t.Error("Gitignore should be false")
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "generated" {
		t.Errorf("Dirs = %v", cfg.Exclude.Dirs)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("/nonexistent/ferrolens.toml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	tmpDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg := LoadOrDefault()
	if cfg.Output.Format != "text" {
		t.Errorf("expected defaults, got format %s", cfg.Output.Format)
	}
}
