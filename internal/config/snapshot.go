package config

import (
	"slices"

	"github.com/jpl-au/srcview/internal/theme"
)

// Snapshot is an immutable copy of the settings a request needs.
// Take one at request entry; later changes to the Config do not affect it.
type Snapshot struct {
	theme         theme.Theme
	approved      []string
	iconPrefix    string
	maxLineLength int
}

// Snapshot copies the current settings.
func (c *Config) Snapshot() Snapshot {
	return Snapshot{
		theme:         c.Theme(),
		approved:      slices.Clone(c.Sources.Approved),
		iconPrefix:    c.Appearance.IconPrefix,
		maxLineLength: c.MaxLineLength(),
	}
}

// DefaultSnapshot returns the settings of an empty configuration.
func DefaultSnapshot() Snapshot {
	return (&Config{}).Snapshot()
}

// Theme returns the selected theme.
func (s Snapshot) Theme() theme.Theme {
	if s.theme == (theme.Theme{}) {
		return theme.Default
	}
	return s.theme
}

// Approved returns a copy of the approved directories.
func (s Snapshot) Approved() []string { return slices.Clone(s.approved) }

// IconPrefix returns the URL prefix for relative icon names.
func (s Snapshot) IconPrefix() string { return s.iconPrefix }

// MaxLineLength returns the scanner limit for source lines.
func (s Snapshot) MaxLineLength() int {
	if s.maxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return s.maxLineLength
}
