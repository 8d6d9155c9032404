// Package extension provides the plugin architecture for srcview. Extensions
// group related commands and MCP tools and register at init time, so a new
// feature does not touch the root command or the MCP server.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for srcview extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Contextless is an optional interface for extensions with commands that
// must run without loading configuration (help pages, build information).
// Commands returned by NoContextCommands() skip initialisation in
// PersistentPreRunE, so a broken config file cannot hide them.
type Contextless interface {
	NoContextCommands() []string
}
