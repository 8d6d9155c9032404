// Package core provides the core extension for srcview.
// It registers commands: config, guide, log, serve, version.
package core

import (
	"github.com/jpl-au/srcview/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Contextless   = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for the MCP server.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newGuideCmd(),
		newLogCmd(),
		e.newServeCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. Configuration and guide tools are built into the
// MCP server itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoContextCommands returns commands that must work without configuration.
// config: loads its own scope so --local works and broken files can be fixed.
func (e *Extension) NoContextCommands() []string {
	return []string{"config", "guide", "version"}
}
