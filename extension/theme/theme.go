// Package theme provides the theme extension.
// Registers commands: theme.
//
// The theme is the Prism stylesheet linked by rendered pages. It is stored
// in appearance.theme and read by every render through the config snapshot.
package theme

import (
	"context"
	"fmt"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/log"
	prism "github.com/jpl-au/srcview/internal/theme"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the theme extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "theme".
func (e *Extension) Name() string { return "theme" }

// Init keeps the shared context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the theme command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "theme [name]",
		Short: "List or select the Prism theme",
		Long: `List the available Prism themes, or select one.

  srcview theme            # list themes, the current one is marked
  srcview theme okaidia    # select okaidia
  srcview theme --local dark`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: prism.Names(),
		RunE:      e.runTheme,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.srcview/config.yaml)")
	return []*cobra.Command{c}
}

// MCPTools returns srcview_themes.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("srcview_themes",
			mcp.WithDescription("List the Prism themes, or select one when name is given"),
			mcp.WithString("name", mcp.Description("Theme to select")),
		),
		Handler: handleThemes,
	}}
}

// entry is the listing form of a theme.
type entry struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Stylesheet string `json:"stylesheet"`
	Current    bool   `json:"current"`
}

func list(current prism.Theme) []entry {
	all := prism.All()
	out := make([]entry, len(all))
	for i, t := range all {
		out[i] = entry{
			Name:       t.Name(),
			Title:      t.Title(),
			Stylesheet: t.FileName(),
			Current:    t == current,
		}
	}
	return out
}

// selectTheme stores name as the theme and returns the parsed theme.
func selectTheme(ctx extension.Context, name string) (prism.Theme, error) {
	t, err := prism.Parse(name)
	if err != nil {
		return prism.Theme{}, err
	}
	err = ctx.Update(func(c *config.Config) error {
		return c.Set("appearance.theme", t.Name())
	})
	return t, err
}

func (e *Extension) runTheme(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	ctx := e.ctx
	if local {
		cfg, err := config.LoadScope(config.ScopeLocal)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
		}
		ctx = extension.NewContext(e.ctx.Workspace(), cfg)
	}

	if len(args) == 0 {
		entries := list(ctx.Snapshot().Theme())
		if cmd.JSON() {
			return cmd.PrintJSON(entries)
		}
		for _, t := range entries {
			mark := " "
			if t.Current {
				mark = "*"
			}
			fmt.Fprintf(cmd.Out(), "%s %-16s %s\n", mark, t.Name, t.Title)
		}
		return nil
	}

	t, err := selectTheme(ctx, args[0])
	log.Event("theme:select", "select").Author(cmd.Author()).Path(args[0]).Write(err)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"theme": t.Name(), "stylesheet": t.FileName()})
	}
	fmt.Fprintf(cmd.Out(), "theme set to %s (%s)\n", t.Name(), t.FileName())
	return nil
}

func handleThemes(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name := extension.StringArg(req, "name", ""); name != "" {
		_, err := selectTheme(extCtx, name)
		log.Event("mcp:srcview_themes", "select").Author("mcp").Path(name).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return extension.JSONResult(list(extCtx.Snapshot().Theme()))
}
