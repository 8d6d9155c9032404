// Package config provides reading and writing of srcview configuration.
// Supports both global (~/.srcview/config.yaml) and local (.srcview/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/srcview/internal/path"
	"github.com/jpl-au/srcview/internal/theme"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrProtectedKey is returned when an MCP client tries to change a
	// protected key.
	ErrProtectedKey = errors.New("config key can only be changed from the command line")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.srcview/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is workspace-specific config in .srcview/config.yaml
	ScopeLocal
)

// Dir is the name of the configuration directory in the home directory
// and in a workspace.
const Dir = ".srcview"

// Author identifies who is recorded in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Appearance controls the wrapping page of a source view.
type Appearance struct {
	Theme      string `yaml:"theme,omitempty"`
	IconPrefix string `yaml:"icon_prefix,omitempty"`
}

// Sources holds the directories outside a workspace that may be read.
type Sources struct {
	Approved []string `yaml:"approved,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxLineLength *int `yaml:"max_line_length,omitempty"`
}

// DefaultMaxLineLength is the line limit applied when not configured.
const DefaultMaxLineLength = 10 * 1024 * 1024 // 10 MB

// Validation bounds for configuration values.
const (
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
)

// Config contains configuration for srcview.
type Config struct {
	Author     Author     `yaml:"author,omitempty"`
	Appearance Appearance `yaml:"appearance,omitempty"`
	Sources    Sources    `yaml:"sources,omitempty"`
	Limits     Limits     `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Appearance.Theme != "" {
		if _, err := theme.Parse(c.Appearance.Theme); err != nil {
			return fmt.Errorf("%w: appearance.theme: %v", ErrInvalidValue, err)
		}
	}
	for _, dir := range c.Sources.Approved {
		if !path.IsAbs(dir) {
			return fmt.Errorf("%w: sources.approved must contain absolute paths, got %q",
				ErrInvalidValue, dir)
		}
	}
	if c.Limits.MaxLineLength != nil {
		v := *c.Limits.MaxLineLength
		if v < MinMaxLineLength || v > MaxMaxLineLength {
			return fmt.Errorf("%w: max_line_length must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength, v)
		}
	}
	return nil
}

// Theme returns the configured theme (defaults to Prism's default theme).
// An invalid name is rejected by Validate and Set, so it cannot be loaded.
func (c *Config) Theme() theme.Theme {
	t, err := theme.Parse(c.Appearance.Theme)
	if err != nil {
		return theme.Default
	}
	return t
}

// MaxLineLength returns the maximum line length for scanning (defaults to 10 MB).
// Affects rendering of sources with very long lines
// (e.g., minified JS/CSS, large JSON, base64 blobs).
func (c *Config) MaxLineLength() int {
	if c.Limits.MaxLineLength == nil {
		return DefaultMaxLineLength
	}
	return *c.Limits.MaxLineLength
}

// Approved returns a copy of the approved directories.
func (c *Config) Approved() []string {
	return slices.Clone(c.Sources.Approved)
}

// Approve adds dir to the approved directories. The path is normalised
// and must be absolute. Returns false if it was already approved.
func (c *Config) Approve(dir string) (bool, error) {
	if !path.IsAbs(dir) {
		return false, fmt.Errorf("%w: approved directory must be absolute, got %q", ErrInvalidValue, dir)
	}
	dir = path.Normalise(dir)
	if slices.Contains(c.Sources.Approved, dir) {
		return false, nil
	}
	c.Sources.Approved = append(c.Sources.Approved, dir)
	slices.Sort(c.Sources.Approved)
	return true, nil
}

// Revoke removes dir from the approved directories.
// Returns false if it was not approved.
func (c *Config) Revoke(dir string) bool {
	dir = path.Normalise(dir)
	i := slices.Index(c.Sources.Approved, dir)
	if i < 0 {
		return false
	}
	c.Sources.Approved = slices.Delete(c.Sources.Approved, i, i+1)
	return true
}

// ClearApproved removes every approved directory and returns how many
// were removed.
func (c *Config) ClearApproved() int {
	n := len(c.Sources.Approved)
	c.Sources.Approved = nil
	return n
}

// LocalPath returns the path to the local (workspace) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.srcview/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	p := pathForScope(scope)
	if p == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: p, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", p, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", p, err)
	}
	cfg.path = p
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", p, err)
	}
	for i, dir := range cfg.Sources.Approved {
		cfg.Sources.Approved[i] = path.Normalise(dir)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	p := pathForScope(scope)
	if p == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(p)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
