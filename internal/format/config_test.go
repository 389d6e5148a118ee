package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "csl.yml")

	config := &Config{IndentSize: 4}
	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.IndentSize != 4 {
		t.Errorf("expected indent size 4, got %d", loaded.IndentSize)
	}
}

func TestConfigLoadMissingFileReturnsDefault(t *testing.T) {
	config, err := LoadConfig("nonexistent.yml")
	if err != nil {
		t.Fatalf("loading a missing config should fall back to defaults, got error: %v", err)
	}
	if config.IndentSize != 2 {
		t.Errorf("expected default indent size 2, got %d", config.IndentSize)
	}
}

func TestConfigLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "csl.yml")
	if err := os.WriteFile(path, []byte("invalid: yaml: content:\n  - bad"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected an error loading invalid YAML")
	}
}

func TestConfigPartialSettings(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "csl.yml")
	yamlContent := "format:\n  indent_size: 3\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.IndentSize != 3 {
		t.Errorf("expected indent size 3, got %d", loaded.IndentSize)
	}
}

func TestConfigLoadZeroIndentFallsBackToDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "csl.yml")
	yamlContent := "format:\n  indent_size: 0\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.IndentSize != 2 {
		t.Errorf("expected default indent size 2 for a zero value, got %d", loaded.IndentSize)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.IndentSize != 2 {
		t.Errorf("default indent size should be 2, got %d", config.IndentSize)
	}
}

func TestConfigSaveError(t *testing.T) {
	if err := SaveConfig("/nonexistent/directory/csl.yml", DefaultConfig()); err == nil {
		t.Errorf("SaveConfig should error for an unwritable path")
	}
}
