// resources.go implements MCP resource handlers for source files.
//
// Resource URIs follow srcview://source/{path} where path is relative to
// the workspace. The file is rendered without a marker, the same output as
// "srcview render <path>".

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jpl-au/srcview/internal/admission"
	"github.com/jpl-au/srcview/internal/log"
	"github.com/jpl-au/srcview/internal/marker"
	"github.com/mark3labs/mcp-go/mcp"
)

// SourceURIPrefix is the scheme and host of source file resources.
const SourceURIPrefix = "srcview://source/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing file path in a resource URI.
	ErrEmptyPath = errors.New("empty source path")
)

// readSource handles srcview://source/{path} resource requests.
func (h *handlers) readSource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	p, err := parseSourceURI(uri)
	if err != nil {
		return nil, err
	}

	html, resolved, err := h.ext.Viewer().ViewFile(h.ext.Workspace(), nil, p, marker.NewBuilder().Build(), admission.Discard)
	log.Event("mcp:resource", "render").Author("mcp").Path(p).Resolved(resolved).Write(err)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/html",
			Text:     html,
		},
	}, nil
}

// parseSourceURI extracts the workspace-relative path from a resource URI.
// Escaped characters (%20) are decoded.
func parseSourceURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, SourceURIPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	p, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if p == "" {
		return "", ErrEmptyPath
	}
	return p, nil
}
