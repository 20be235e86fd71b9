// Package config loads the optional on-disk configuration file.
// Flags always win over the file; the file wins over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config flag
// is given. Its absence is not an error.
const DefaultFile = "docx-proofreader.yaml"

// Markers configures the strings wrapped around inserted and deleted text.
type Markers struct {
	InsertOpen  string `yaml:"insert_open"`
	InsertClose string `yaml:"insert_close"`
	DeleteOpen  string `yaml:"delete_open"`
	DeleteClose string `yaml:"delete_close"`
}

// Config is the full tool configuration.
type Config struct {
	ContextLevel int     `yaml:"context_level"`
	OutputDir    string  `yaml:"output_dir"`
	Markers      Markers `yaml:"markers"`
}

// Default returns the built-in configuration: no context paragraphs,
// report in the working directory, **bold** / --struck-- markers.
func Default() Config {
	return Config{
		ContextLevel: 0,
		OutputDir:    ".",
		Markers: Markers{
			InsertOpen:  "**",
			InsertClose: "**",
			DeleteOpen:  "--",
			DeleteClose: "--",
		},
	}
}

// Parse decodes and validates a configuration payload on top of the
// defaults. Fields absent from the payload keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML configuration file from disk.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot honor.
func (c Config) Validate() error {
	if c.ContextLevel < 0 {
		return fmt.Errorf("config: context_level must be >= 0, got %d", c.ContextLevel)
	}
	for name, v := range map[string]string{
		"insert_open":  c.Markers.InsertOpen,
		"insert_close": c.Markers.InsertClose,
		"delete_open":  c.Markers.DeleteOpen,
		"delete_close": c.Markers.DeleteClose,
	} {
		if v == "" {
			return fmt.Errorf("config: markers.%s must not be empty", name)
		}
	}
	return nil
}

// normalized backfills fields an explicit `markers:` block left empty and
// defaults the output directory to the working directory.
func (c Config) normalized() Config {
	def := Default()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Markers == (Markers{}) {
		c.Markers = def.Markers
	}
	return c
}
