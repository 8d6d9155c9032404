// Package theme lists the Prism stylesheets a source view can use.
//
// The catalogue is fixed: each theme maps to one of the stylesheets shipped
// with Prism. Only the wrapping page depends on the theme; rendered code
// fragments are identical for every theme.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for names outside the catalogue.
var ErrUnknown = errors.New("unknown theme")

// Theme is a Prism stylesheet.
type Theme struct {
	name     string
	fileName string
	title    string
}

// Name returns the configuration name (e.g. "solarized-light").
func (t Theme) Name() string { return t.name }

// FileName returns the stylesheet file name (e.g. "prism-coy.css").
func (t Theme) FileName() string { return t.fileName }

// Title returns the display title.
func (t Theme) Title() string { return t.title }

// String returns the name.
func (t Theme) String() string { return t.name }

// The Prism themes. Default is Prism.
var (
	Prism          = Theme{"prism", "prism.css", "Default"}
	Coy            = Theme{"coy", "prism-coy.css", "Coy"}
	Dark           = Theme{"dark", "prism-dark.css", "Dark"}
	Funky          = Theme{"funky", "prism-funky.css", "Funky"}
	Okaidia        = Theme{"okaidia", "prism-okaidia.css", "Okaidia"}
	SolarizedLight = Theme{"solarized-light", "prism-solarizedlight.css", "Solarized Light"}
	TomorrowNight  = Theme{"tomorrow-night", "prism-tomorrow.css", "Tomorrow Night"}
	Twilight       = Theme{"twilight", "prism-twilight.css", "Twilight"}
)

// Default is the theme used when none is configured.
var Default = Prism

var all = []Theme{Prism, Coy, Dark, Funky, Okaidia, SolarizedLight, TomorrowNight, Twilight}

// All returns every theme in display order.
func All() []Theme {
	out := make([]Theme, len(all))
	copy(out, all)
	return out
}

// Names returns the names of every theme in display order.
func Names() []string {
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.name
	}
	return names
}

// Parse returns the theme with the given name, ignoring case. Underscores
// are accepted in place of dashes so "SOLARIZED_LIGHT" also works.
// An empty name selects Default.
func Parse(name string) (Theme, error) {
	if name == "" {
		return Default, nil
	}
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, t := range all {
		if t.name == key {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
}
