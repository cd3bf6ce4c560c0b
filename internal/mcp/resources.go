// ABOUTME: MCP resources exposing scribbles as readable resources.
// ABOUTME: Allows AI agents to read content via the scribble:// URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourcePrefix = "scribble://object/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourcePrefix + "{id}",
			Name:        "Scribble",
			Description: "Raw scribble content by id or unique prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	prefix, ok := strings.CutPrefix(req.Params.URI, resourcePrefix)
	if !ok || prefix == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	sc, err := s.store.Get(prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", req.Params.URI, describe(err))
	}

	contents := &mcp.ResourceContents{URI: req.Params.URI}
	if utf8.Valid(sc.Content) {
		contents.MIMEType = "text/markdown"
		contents.Text = string(sc.Content)
	} else {
		contents.MIMEType = "application/octet-stream"
		contents.Blob = sc.Content
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{contents},
	}, nil
}
