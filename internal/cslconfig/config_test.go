package cslconfig

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Format.IndentSize != 2 {
		t.Errorf("expected default indent size 2, got %d", cfg.Format.IndentSize)
	}
	if cfg.ProjectName != "" {
		t.Errorf("expected empty default project name, got %q", cfg.ProjectName)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
project_name: widgetco-config
docs:
  description: Widget Co runtime configuration schemas
  version: "1.4.0"
  base_url: https://docs.widgetco.example
format:
  indent_size: 4
`
	if err := os.WriteFile("csl.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.ProjectName != "widgetco-config" {
		t.Errorf("expected project name 'widgetco-config', got %s", cfg.ProjectName)
	}
	if cfg.Docs.Version != "1.4.0" {
		t.Errorf("expected version '1.4.0', got %s", cfg.Docs.Version)
	}
	if cfg.Format.IndentSize != 4 {
		t.Errorf("expected indent size 4, got %d", cfg.Format.IndentSize)
	}
}

func TestLoadRejectsTrailingSlashBaseURL(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
docs:
  base_url: https://docs.widgetco.example/
`
	if err := os.WriteFile("csl.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected an error for a trailing slash base_url")
	}
}

func TestLoadZeroIndentFallsBackToDefault(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
format:
  indent_size: 0
`
	if err := os.WriteFile("csl.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Format.IndentSize != 2 {
		t.Errorf("expected indent size to fall back to 2, got %d", cfg.Format.IndentSize)
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Errorf("expected InProject to be false with no csl.yml present")
	}

	if err := os.WriteFile("csl.yml", []byte("project_name: x\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if !InProject() {
		t.Errorf("expected InProject to be true once csl.yml exists")
	}
}

func TestGetProjectRootNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if _, err := GetProjectRoot(); err == nil {
		t.Errorf("expected an error when no csl.yml exists up the tree")
	}
}
