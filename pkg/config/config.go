// Package config loads ferrolens configuration from TOML, YAML or JSON
// files, falling back to defaults when no file is present.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for ferrolens.
type Config struct {
	Analysis AnalysisConfig `koanf:"analysis"`
	Exclude  ExcludeConfig  `koanf:"exclude"`
	Output   OutputConfig   `koanf:"output"`
}

// AnalysisConfig controls the analysis run.
type AnalysisConfig struct {
	// IncludeTests extracts types from test sources too.
	IncludeTests bool `koanf:"include_tests"`
	// MaxFileSize skips files larger than this many bytes (0 = no limit).
	MaxFileSize int64 `koanf:"max_file_size"`
	// Workers bounds the extraction pool (0 = 2x NumCPU).
	Workers int `koanf:"workers"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, csv, markdown
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludeTests: false,
			MaxFileSize:  0,
			Workers:      0,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{},
			Dirs: []string{
				"target",
				".git",
				"vendor",
				"node_modules",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations and returns defaults when
// none load.
func LoadOrDefault() *Config {
	names := []string{
		"ferrolens.toml",
		"ferrolens.yaml",
		"ferrolens.yml",
		"ferrolens.json",
		".ferrolens.toml",
		".ferrolens.yaml",
		".ferrolens.yml",
		".ferrolens.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
