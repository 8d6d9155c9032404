// tools_config.go implements MCP tools for configuration management.
//
// Changes go through the shared Context, so the next tool call renders with
// the new theme without restarting the server. Approved directories are
// readable here but only the command line may change them.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/srcview/extension"
	"github.com/jpl-au/srcview/internal/config"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles srcview_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := extension.StringArg(req, "key", "")

	var (
		all   map[string]string
		value string
		err   error
	)
	h.ext.Read(func(cfg *config.Config) {
		if key == "" {
			all = cfg.All()
			return
		}
		value, err = cfg.Get(key)
	})

	if key == "" {
		log.Event("mcp:srcview_config_get", "list").Author("mcp").Write(nil)
		return extension.JSONResult(all)
	}

	log.Event("mcp:srcview_config_get", "get").Author("mcp").Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]string{key: value})
}

// configSet handles srcview_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	if config.IsProtectedKey(key) {
		err = fmt.Errorf("%w: %s (use srcview approve)", config.ErrProtectedKey, key)
		log.Event("mcp:srcview_config_set", "set").Author("mcp").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	var stored string
	err = h.ext.Update(func(cfg *config.Config) error {
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		stored, _ = cfg.Get(key)
		return nil
	})

	log.Event("mcp:srcview_config_set", "set").Author("mcp").Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return extension.JSONResult(map[string]string{key: stored})
}
