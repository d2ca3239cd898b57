// Package config loads an optional YAML scan profile. Flag values
// layered on top by the CLI take precedence.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/threatline/sigscan/pkg/matcher"
)

// Config is the YAML scan profile.
type Config struct {
	// Workers is the scan pool size (default: available CPUs).
	Workers int `yaml:"workers"`

	// ChunkSize is the matcher's per-read chunk floor in bytes.
	ChunkSize int `yaml:"chunk_size"`

	// Slack is the matcher's chunk headroom beyond the signature length.
	Slack int `yaml:"slack"`

	// IncludeHidden includes hidden files and directories in the walk.
	IncludeHidden bool `yaml:"include_hidden"`

	// FollowSymlinks follows symbolic links during the walk.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// MaxFileSize caps candidate file size in bytes (0 = no limit).
	MaxFileSize int64 `yaml:"max_file_size"`

	// IgnoreFile points at a gitignore-style exclude file.
	IgnoreFile string `yaml:"ignore_file"`

	// ShowClean includes clean and ineligible files in human output.
	ShowClean bool `yaml:"show_clean"`
}

// Default returns the baseline profile.
func Default() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		ChunkSize: matcher.DefaultChunkSize,
		Slack:     matcher.DefaultSlack,
	}
}

// Load parses a YAML profile from path, layered over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects nonsensical values.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be >= 0, got %d", c.ChunkSize)
	}
	if c.Slack < 0 {
		return fmt.Errorf("slack must be >= 0, got %d", c.Slack)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be >= 0, got %d", c.MaxFileSize)
	}
	return nil
}
