// Package config loads jdocref project settings from .jdocref.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project directory.
const FileName = ".jdocref.yaml"

// Config holds the settings of one documentation build.
type Config struct {
	// SourcesDir is the root of the Java source tree.
	SourcesDir string `yaml:"sources_dir"`

	// PackagePrefix expands references starting with '.' and is stripped
	// from class names when building doc paths.
	PackagePrefix string `yaml:"package_prefix,omitempty"`

	// APIPrefix is the doc path prefix of generated class pages.
	APIPrefix string `yaml:"api_prefix"`

	// DocsDir is where the RST pages live.
	DocsDir string `yaml:"docs_dir"`

	// Exclude lists gitignore-style patterns of sources to skip when
	// enumerating classes.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		SourcesDir: ".",
		APIPrefix:  "api",
		DocsDir:    "doc",
	}
}

// Load reads .jdocref.yaml (or .jdocref.yml) from dir. Missing files yield
// the defaults; paths in the file are relative to dir.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		path = filepath.Join(dir, ".jdocref.yml")
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		cfg.resolvePaths(dir)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.resolvePaths(dir)
	return cfg, nil
}

func (c *Config) resolvePaths(dir string) {
	if c.SourcesDir != "" && !filepath.IsAbs(c.SourcesDir) {
		c.SourcesDir = filepath.Join(dir, c.SourcesDir)
	}
	if c.DocsDir != "" && !filepath.IsAbs(c.DocsDir) {
		c.DocsDir = filepath.Join(dir, c.DocsDir)
	}
}

// Save writes c to dir/.jdocref.yaml.
func Save(dir string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

// Merge applies non-empty overrides, e.g. from command-line flags.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.SourcesDir != "" {
		c.SourcesDir = other.SourcesDir
	}
	if other.PackagePrefix != "" {
		c.PackagePrefix = other.PackagePrefix
	}
	if other.APIPrefix != "" {
		c.APIPrefix = other.APIPrefix
	}
	if other.DocsDir != "" {
		c.DocsDir = other.DocsDir
	}
	if len(other.Exclude) > 0 {
		c.Exclude = append(c.Exclude, other.Exclude...)
	}
}
