// config_keys.go provides key-value access to configuration settings.
//
// The CLI and the MCP tools address configuration by string keys such as
// "appearance.theme". Optional numeric fields are pointers so that "not set"
// (nil) can be told apart from an explicit value and defaults apply only to
// the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/srcview/internal/path"
	"github.com/jpl-au/srcview/internal/theme"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"appearance.theme", "appearance.icon_prefix",
		"sources.approved",
		"limits.max_line_length",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// IsProtectedKey reports whether key widens read access to the machine.
// Protected keys are changed only from the command line (srcview approve),
// never by an MCP client.
func IsProtectedKey(key string) bool {
	return key == "sources.approved"
}

// Get returns the value of a configuration key as a string.
// sources.approved is returned as a comma separated list.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "appearance.theme":
		return c.Theme().Name(), nil
	case "appearance.icon_prefix":
		return c.Appearance.IconPrefix, nil
	case "sources.approved":
		return strings.Join(c.Sources.Approved, ","), nil
	case "limits.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
// sources.approved replaces the whole list with a comma separated value;
// an empty value clears it.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "appearance.theme":
		t, err := theme.Parse(value)
		if err != nil {
			return fmt.Errorf("%w: appearance.theme: %v", ErrInvalidValue, err)
		}
		c.Appearance.Theme = t.Name()
	case "appearance.icon_prefix":
		c.Appearance.IconPrefix = value
	case "sources.approved":
		var dirs []string
		for _, d := range strings.Split(value, ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			if !path.IsAbs(d) {
				return fmt.Errorf("%w: sources.approved must contain absolute paths, got %q", ErrInvalidValue, d)
			}
			d = path.Normalise(d)
			if !slices.Contains(dirs, d) {
				dirs = append(dirs, d)
			}
		}
		slices.Sort(dirs)
		c.Sources.Approved = dirs
	case "limits.max_line_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxLineLength || n > MaxMaxLineLength {
			return fmt.Errorf("%w: limits.max_line_length must be a positive integer up to %d", ErrInvalidValue, MaxMaxLineLength)
		}
		c.Limits.MaxLineLength = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":            c.Author.Name,
		"author.email":           c.Author.Email,
		"appearance.theme":       c.Theme().Name(),
		"appearance.icon_prefix": c.Appearance.IconPrefix,
		"sources.approved":       strings.Join(c.Sources.Approved, ","),
		"limits.max_line_length": strconv.Itoa(c.MaxLineLength()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "appearance.theme":
		return c.Appearance.Theme != ""
	case "appearance.icon_prefix":
		return c.Appearance.IconPrefix != ""
	case "sources.approved":
		return len(c.Sources.Approved) > 0
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	default:
		return false
	}
}
