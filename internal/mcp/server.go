// Package mcp implements the Model Context Protocol server, exposing
// srcview to LLMs. Assistants can render source files with markers, check
// which source directories a request may read and adjust configuration.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP server over stdio and blocks until the client
// disconnects. tools are the extension tools to expose next to the
// built-in configuration and guide tools.
func Serve(extCtx extension.Context, tools []extension.MCPTool) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if extCtx == nil {
		return errors.New("mcp: extension context not initialised")
	}

	s := NewServer(extCtx, tools)
	slog.Info("srcview MCP server ready",
		"version", version.Short(),
		"workspace", extCtx.Workspace(),
		"tools", len(tools)+3,
		"transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server without starting a transport.
func NewServer(extCtx extension.Context, tools []extension.MCPTool) *server.MCPServer {
	h := &handlers{ext: extCtx}

	s := server.NewMCPServer(
		"srcview",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	for _, t := range tools {
		s.AddTool(t.Tool, h.wrap(t.Handler))
	}
	return s
}

// handlers serves the built-in tools and resources.
type handlers struct {
	ext extension.Context
}

// wrap adapts an extension handler to the server's handler signature.
func (h *handlers) wrap(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return fn(ctx, h.ext, req)
	}
}

// registerResources adds URI-based access to rendered workspace files.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			SourceURIPrefix+"{path}",
			"Source file",
			mcp.WithTemplateDescription("Workspace source file rendered as Prism markup"),
			mcp.WithTemplateMIMEType("text/html"),
		),
		h.readSource,
	)
}

// registerTools adds the tools every server has regardless of extensions.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("srcview_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, appearance.theme, sources.approved, ...) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("srcview_config_set",
			mcp.WithDescription("Set a configuration value and save it. sources.approved is read-only here"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (author.name, appearance.theme, ...)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("srcview_guide",
			mcp.WithDescription("Get help/guide content for srcview"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'render', 'admit') or empty for the main guide")),
		),
		h.getGuide,
	)
}
