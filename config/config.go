// Package config loads the project configuration of cvac from cvac.toml,
// cvac.yaml or cvac.yml. Values missing from the file keep their defaults and
// CVAC_* environment variables override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the configuration file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	// FormatAuto detects the format from the file extension.
	FormatAuto
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

type Log struct {
	// Verbosity is passed to commonlog.Configure; 0 logs notices and above.
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

type FormatOptions struct {
	Indent string `toml:"indent" yaml:"indent"`
}

type Config struct {
	Optimize   bool          `toml:"optimize" yaml:"optimize"`
	Warnings   bool          `toml:"warnings" yaml:"warnings"`
	Workers    int           `toml:"workers" yaml:"workers"`
	Extensions []string      `toml:"extensions" yaml:"extensions"`
	Log        Log           `toml:"log" yaml:"log"`
	Format     FormatOptions `toml:"format" yaml:"format"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

func Default() *Config {
	return &Config{
		Optimize:   true,
		Warnings:   true,
		Workers:    runtime.NumCPU(),
		Extensions: []string{".cva"},
		Format: FormatOptions{
			Indent: "    ",
		},
	}
}

// Load reads the file at path, detecting the format from its extension.
func Load(path string) (*Config, error) {
	return LoadWithFormat(path, FormatAuto)
}

func LoadWithFormat(path string, format Format) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if format == FormatAuto {
		format = detectFormat(path)
	}
	cfg, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes content on top of the defaults, applies environment
// overrides and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ApplyEnv overrides fields from CVAC_OPTIMIZE, CVAC_WARNINGS, CVAC_WORKERS,
// CVAC_LOG_VERBOSITY and CVAC_LOG_FILE.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CVAC_OPTIMIZE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CVAC_OPTIMIZE: %w", err)
		}
		c.Optimize = b
	}
	if v, ok := lookup("CVAC_WARNINGS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CVAC_WARNINGS: %w", err)
		}
		c.Warnings = b
	}
	if v, ok := lookup("CVAC_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CVAC_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v, ok := lookup("CVAC_LOG_VERBOSITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CVAC_LOG_VERBOSITY: %w", err)
		}
		c.Log.Verbosity = n
	}
	if v, ok := lookup("CVAC_LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

// HasSourceExt reports whether path ends in one of the configured source
// extensions.
func (c *Config) HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
