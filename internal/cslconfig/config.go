// Package cslconfig reads the optional project-level csl.yml/csl.yaml file
// that supplies documentation metadata and formatter defaults, per
// SPEC_FULL §2/§6.1.
package cslconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the project-level configuration read from csl.yml/csl.yaml.
type Config struct {
	ProjectName string     `mapstructure:"project_name"`
	Docs        DocsConfig `mapstructure:"docs"`
	Format      FormatCfg  `mapstructure:"format"`
}

// DocsConfig carries the metadata internal/htmldoc decorates every
// generated page with.
type DocsConfig struct {
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
	BaseURL     string `mapstructure:"base_url"`
}

// FormatCfg carries internal/format's project-level defaults.
type FormatCfg struct {
	IndentSize int `mapstructure:"indent_size"`
}

// Load reads csl.yml/csl.yaml from the current directory, falling back to
// defaults when no file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("project_name", "")
	v.SetDefault("docs.description", "")
	v.SetDefault("docs.version", "")
	v.SetDefault("docs.base_url", "")
	v.SetDefault("format.indent_size", 2)

	v.SetConfigName("csl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject reports whether the current directory holds a csl.yml/csl.yaml.
func InProject() bool {
	if _, err := os.Stat("csl.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("csl.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks upward from the current directory looking for
// csl.yml/csl.yaml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "csl.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "csl.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a CSL project (no csl.yml found)")
		}
		dir = parent
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Format.IndentSize <= 0 {
		cfg.Format.IndentSize = 2
	}
	if cfg.Docs.BaseURL != "" {
		if strings.HasSuffix(cfg.Docs.BaseURL, "/") {
			return fmt.Errorf("docs.base_url must not end with '/', got: %s", cfg.Docs.BaseURL)
		}
	}
	return nil
}
