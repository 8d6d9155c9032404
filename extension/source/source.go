// Package source provides the source extension.
// Registers commands: render, admit, approve.
//
// render prints a source file as Prism markup with an optional marker.
// admit shows which requested source directories a render may search.
// approve manages the directories outside the workspace that may be read.
package source

import (
	"github.com/jpl-au/srcview/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the source extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "source".
func (e *Extension) Name() string { return "source" }

// Init keeps the shared context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the source commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newRenderCmd(),
		e.newAdmitCmd(),
		e.newApproveCmd(),
	}
}

// MCPTools returns the render and admission tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		renderTool(),
		admitTool(),
	}
}
