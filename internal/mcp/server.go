// ABOUTME: MCP server for scribble integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts over the scribble store.

package mcp

import (
	"context"

	"github.com/harper/scribble/internal/scribble"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	store  *scribble.Store
}

func NewServer(store *scribble.Store, version string) *Server {
	s := &Server{store: store}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "scribble",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run serves on an arbitrary transport until ctx is done or the peer
// disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}

func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}
