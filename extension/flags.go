// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "line-start" -> FlagLineStart).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagLocal = "local" // Use local scope (workspace .srcview directory)
	FlagPage  = "page"  // Wrap output in a standalone HTML page

	// String flags

	FlagAssets      = "assets"      // URL prefix of the Prism stylesheets
	FlagDescription = "description" // Marker description
	FlagIcon        = "icon"        // Marker icon
	FlagSourceDir   = "source-dir"  // Requested source directory (repeatable)
	FlagTitle       = "title"       // Marker title

	// Integer flags

	FlagColumnEnd   = "column-end"   // Last marked column
	FlagColumnStart = "column-start" // First marked column
	FlagLineEnd     = "line-end"     // Last marked line
	FlagLineStart   = "line-start"   // First marked line
)
