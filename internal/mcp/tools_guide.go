// tools_guide.go implements the MCP tool for accessing help content.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/guide"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles srcview_guide tool calls. An unknown topic returns the
// list of available topics.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := extension.StringArg(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:srcview_guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return extension.JSONResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}

	return mcp.NewToolResultText(content), nil
}
