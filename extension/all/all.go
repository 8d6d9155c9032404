// Package all imports all built-in srcview extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each extension registers itself via init()
	_ "github.com/jpl-au/srcview/extension/core"
	_ "github.com/jpl-au/srcview/extension/source"
	_ "github.com/jpl-au/srcview/extension/theme"
)
