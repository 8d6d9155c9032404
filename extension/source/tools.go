// tools.go implements the MCP tools of the source extension.

package source

import (
	"context"
	"strings"

	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/admission"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/jpl-au/srcview/internal/marker"
	"github.com/mark3labs/mcp-go/mcp"
)

func renderTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("srcview_render",
			mcp.WithDescription("Render a source file as Prism markup, optionally marking lines or columns with a title and description"),
			mcp.WithString("file", mcp.Description("File path, relative to the workspace or a source directory")),
			mcp.WithString("content", mcp.Description("Source text to render instead of reading a file; file then only selects the language")),
			mcp.WithArray("source_dirs", mcp.Description("Directories to search: relative, absolute (approved only), glob:... or regex:..."), mcp.WithStringItems()),
			mcp.WithNumber("line_start", mcp.Description("First marked line (1-based, 0 for no marker)")),
			mcp.WithNumber("line_end", mcp.Description("Last marked line")),
			mcp.WithNumber("column_start", mcp.Description("First marked column on a single marked line")),
			mcp.WithNumber("column_end", mcp.Description("Last marked column")),
			mcp.WithString("title", mcp.Description("Marker title")),
			mcp.WithString("description", mcp.Description("Marker description")),
			mcp.WithString("icon", mcp.Description("Marker icon")),
			mcp.WithBoolean("page", mcp.Description("Wrap the fragment in a complete HTML page")),
		),
		Handler: handleRender,
	}
}

func admitTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("srcview_admit",
			mcp.WithDescription("List which of the requested source directories may be read"),
			mcp.WithArray("dirs", mcp.Required(), mcp.Description("Requested directories: relative, absolute, glob:... or regex:..."), mcp.WithStringItems()),
		),
		Handler: handleAdmit,
	}
}

func markerFromRequest(req mcp.CallToolRequest) marker.Marker {
	return marker.NewBuilder().
		LineStart(extension.IntArg(req, "line_start", 0)).
		LineEnd(extension.IntArg(req, "line_end", 0)).
		ColumnStart(extension.IntArg(req, "column_start", 0)).
		ColumnEnd(extension.IntArg(req, "column_end", 0)).
		Title(extension.StringArg(req, "title", "")).
		Description(extension.StringArg(req, "description", "")).
		Icon(extension.StringArg(req, "icon", "")).
		Build()
}

func handleRender(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := extension.StringArg(req, "file", "")
	content, hasContent := contentArg(req)
	if file == "" && !hasContent {
		return mcp.NewToolResultError("file or content is required"), nil
	}

	m := markerFromRequest(req)
	v := extCtx.Viewer()
	sink := log.NewFiltered("", 0)

	var (
		html, resolved string
		err            error
	)
	if hasContent {
		html = v.View(file, strings.NewReader(content), m)
	} else {
		html, resolved, err = v.ViewFile(extCtx.Workspace(), extension.StringsArg(req, "source_dirs"), file, m, sink)
	}

	log.Event("mcp:srcview_render", "render").
		Author("mcp").
		Path(file).
		Resolved(resolved).
		Detail("line_start", m.LineStart()).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if extension.BoolArg(req, "page", false) {
		if html, err = v.Page(file, html); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return extension.JSONResult(renderResult{
		File:     file,
		Resolved: resolved,
		Theme:    v.Theme().Name(),
		HTML:     html,
		Warnings: warnings(sink),
	})
}

func handleAdmit(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dirs := extension.StringsArg(req, "dirs")
	sink := log.NewFiltered("", 0)

	permitted := admission.New(extCtx.Snapshot()).Permit(extCtx.Workspace(), dirs, sink)
	if permitted == nil {
		permitted = []string{}
	}

	log.Event("mcp:srcview_admit", "admit").
		Author("mcp").
		Path(extCtx.Workspace()).
		Detail("requested", len(dirs)).
		Detail("permitted", len(permitted)).
		Detail("rejected", sink.HasErrors()).
		Write(nil)

	return extension.JSONResult(admitResult{
		Workspace: extCtx.Workspace(),
		Permitted: permitted,
		Warnings:  warnings(sink),
		Info:      sink.InfoMessages(),
	})
}

// contentArg distinguishes an absent content argument from an empty one.
func contentArg(req mcp.CallToolRequest) (string, bool) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := args["content"].(string)
	return s, ok
}
