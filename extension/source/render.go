// render.go implements the "srcview render" command.
//
// The file argument is located in the workspace or one of the --source-dir
// directories; "-" reads standard input. The marker flags mirror the
// fields of a marker: lines and columns are 1-based, 0 means unset.

package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/srcview/cmd"
	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/jpl-au/srcview/internal/marker"
	"github.com/jpl-au/srcview/internal/viewer"
	"github.com/spf13/cobra"
)

// Stdin is the file argument that reads standard input.
const Stdin = "-"

func (e *Extension) newRenderCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a source file as Prism markup",
		Long: `Render a source file as Prism-highlightable HTML.

  srcview render src/Main.java
  srcview render Main.java --source-dir src/main/java --line-start 12
  srcview render Main.java -s 'glob:**/java' -l 12 -c 5 --column-end 9 \
      --title 'Unused variable' --description 'Remove <code>x</code>'
  cat main.c | srcview render - --line-start 3 --line-end 7 --page

Directories outside the workspace must be approved first (srcview approve).`,
		Args: cobra.ExactArgs(1),
		RunE: e.runRender,
	}
	c.Flags().IntP(extension.FlagLineStart, "l", 0, "First marked line (1-based)")
	c.Flags().Int(extension.FlagLineEnd, 0, "Last marked line (default: line-start)")
	c.Flags().IntP(extension.FlagColumnStart, "c", 0, "First marked column on a single line (1-based)")
	c.Flags().Int(extension.FlagColumnEnd, 0, "Last marked column (default: end of line)")
	c.Flags().String(extension.FlagTitle, "", "Marker title (b, i, em, strong, code and br tags allowed)")
	c.Flags().String(extension.FlagDescription, "", "Marker description (same tags as title)")
	c.Flags().String(extension.FlagIcon, "", "Marker icon URL or name relative to appearance.icon_prefix")
	c.Flags().StringArrayP(extension.FlagSourceDir, "s", nil, "Source directory to search, relative, absolute, glob: or regex: (repeatable)")
	c.Flags().Bool(extension.FlagPage, false, "Wrap the fragment in a complete HTML page")
	c.Flags().String(extension.FlagAssets, "", "URL prefix of the Prism stylesheets for --page")
	return c
}

// markerFromFlags builds a marker from the marker flags.
func markerFromFlags(c *cobra.Command) marker.Marker {
	lineStart, _ := c.Flags().GetInt(extension.FlagLineStart)
	lineEnd, _ := c.Flags().GetInt(extension.FlagLineEnd)
	colStart, _ := c.Flags().GetInt(extension.FlagColumnStart)
	colEnd, _ := c.Flags().GetInt(extension.FlagColumnEnd)
	title, _ := c.Flags().GetString(extension.FlagTitle)
	desc, _ := c.Flags().GetString(extension.FlagDescription)
	icon, _ := c.Flags().GetString(extension.FlagIcon)

	return marker.NewBuilder().
		LineStart(lineStart).
		LineEnd(lineEnd).
		ColumnStart(colStart).
		ColumnEnd(colEnd).
		Title(title).
		Description(desc).
		Icon(icon).
		Build()
}

// renderResult is the JSON form of a render.
type renderResult struct {
	File     string   `json:"file"`
	Resolved string   `json:"resolved,omitempty"`
	Theme    string   `json:"theme"`
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings,omitempty"`
}

func (e *Extension) runRender(c *cobra.Command, args []string) error {
	name := args[0]
	dirs, _ := c.Flags().GetStringArray(extension.FlagSourceDir)
	page, _ := c.Flags().GetBool(extension.FlagPage)
	assets, _ := c.Flags().GetString(extension.FlagAssets)
	m := markerFromFlags(c)

	v := e.ctx.Viewer(viewer.WithAssets(assets))
	sink := newSink()

	var (
		html, resolved string
		err            error
	)
	if name == Stdin {
		html = v.View("stdin", os.Stdin, m)
	} else {
		html, resolved, err = v.ViewFile(e.ctx.Workspace(), dirs, name, m, sink)
	}

	log.Event("source:render", "render").
		Author(cmd.Author()).
		Path(name).
		Resolved(resolved).
		Detail("line_start", m.LineStart()).
		Detail("line_end", m.LineEnd()).
		Detail("theme", v.Theme().Name()).
		Write(err)

	warned := warnings(sink)
	if err != nil {
		if errors.Is(err, viewer.ErrNotFound) && len(dirs) == 0 {
			err = fmt.Errorf("%w (use --source-dir to search other directories)", err)
		}
		printWarnings(warned)
		return cmd.PrintJSONError(err)
	}

	if page {
		if html, err = v.Page(name, html); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("render page: %w", err))
		}
	}

	if cmd.JSON() {
		return cmd.PrintJSON(renderResult{
			File:     name,
			Resolved: resolved,
			Theme:    v.Theme().Name(),
			HTML:     html,
			Warnings: warned,
		})
	}
	printWarnings(warned)
	fmt.Fprintln(cmd.Out(), html)
	return nil
}
