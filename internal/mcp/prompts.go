// ABOUTME: MCP prompts for common scribble workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-scribble",
		Description: "Summarize an existing scribble and store the summary alongside it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "id",
				Description: "Id or prefix of the scribble to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-scribbles",
		Description: "Get suggestions for tagging recent scribbles",
	}, s.getOrganizePrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (s *Server) getSummarizePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id, ok := req.Params.Arguments["id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the scribble with id: %s

1. Use the get_scribble tool to retrieve its content
2. Write a concise summary of the main point and any action items
3. Store the summary with add_scribble, tagged "summary"
4. Scribbles are immutable, so leave the original untouched`, id)), nil
}

func (s *Server) getOrganizePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(`Help me organize my scribbles:

1. Use list_tags to see the tags already in use
2. Use list_scribbles to see recent scribbles and their previews
3. Suggest which existing tags fit each untagged scribble
4. Propose new tags only where nothing existing fits
5. Apply the tags I approve with add_tag

Refer to scribbles by the first 8 characters of their id.`), nil
}
