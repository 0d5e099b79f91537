// Package config loads pyrint.toml and turns it into the options the driver runs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pyrint/internal/diag"
)

// FileName is the configuration file looked up from the analysis target upwards.
const FileName = "pyrint.toml"

// ErrNotFound is returned by Find when no pyrint.toml exists up to the filesystem root.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config mirrors pyrint.toml. The zero value is not usable; start from Default.
type Config struct {
	// Path is the file the values were decoded from, empty for defaults.
	Path string `toml:"-"`
	// Unknown lists keys present in the file that no field decoded.
	Unknown []string `toml:"-"`

	Jobs   int          `toml:"jobs"`
	Rules  RulesConfig  `toml:"rules"`
	Files  FilesConfig  `toml:"files"`
	Output OutputConfig `toml:"output"`
}

type RulesConfig struct {
	Enable  []string `toml:"enable"`
	Disable []string `toml:"disable"`
}

type FilesConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Jobs: 1,
		Files: FilesConfig{
			Extensions: []string{".py"},
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Load decodes path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	// An explicit empty list still means "only .py".
	if meta.IsDefined("files", "extensions") && len(cfg.Files.Extensions) == 0 {
		cfg.Files.Extensions = Default().Files.Extensions
	}
	if meta.IsDefined("output", "format") && strings.TrimSpace(cfg.Output.Format) == "" {
		return Config{}, fmt.Errorf("%s: [output].format must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds the file governing target and loads it. Without a file
// it returns Default and found=false.
func Discover(target string) (cfg Config, found bool, err error) {
	path, err := Find(target)
	if errors.Is(err, ErrNotFound) {
		return Default(), false, nil
	}
	if err != nil {
		return Config{}, false, err
	}
	cfg, err = Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate checks value ranges, rule codes and exclude patterns.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0, got %d", c.Jobs)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	if _, err := c.RuleSet(); err != nil {
		return fmt.Errorf("[rules]: %w", err)
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[files].extensions: %q must start with a dot", ext)
		}
	}
	if _, err := c.Filter(); err != nil {
		return fmt.Errorf("[files].exclude: %w", err)
	}
	return nil
}

// RuleSet builds the enabled rule set from [rules].
func (c Config) RuleSet() (*diag.RuleSet, error) {
	return diag.ParseRuleSet(c.Rules.Enable, c.Rules.Disable)
}

// Filter compiles [files] into a path matcher.
func (c Config) Filter() (*Filter, error) {
	return NewFilter(c.Files.Extensions, c.Files.Exclude)
}
