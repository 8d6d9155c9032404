// serve.go implements the "srcview serve" command.
//
// Serve blocks, answering MCP requests over stdio until the client
// disconnects. It shares the CLI's Context, so the workspace flag and the
// loaded configuration apply to every tool call.

package core

import (
	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

  srcview serve --workspace /path/to/checkout`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(e.ctx, extension.Tools())
		},
	}
}
