// ABOUTME: MCP tools for scribble operations.
// ABOUTME: Maps CLI functionality to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harper/scribble/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_scribble
	s.server.AddTool(&mcp.Tool{
		Name:        "add_scribble",
		Description: "Store a new scribble; identical content yields the same id",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "Scribble content"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			},
			"required": ["content"]
		}`),
	}, s.handleAddScribble)

	// list_scribbles
	s.server.AddTool(&mcp.Tool{
		Name:        "list_scribbles",
		Description: "List scribbles newest first with one-line previews",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tag": {"type": "string", "description": "Only scribbles carrying this tag"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListScribbles)

	// get_scribble
	s.server.AddTool(&mcp.Tool{
		Name:        "get_scribble",
		Description: "Get a scribble's content by id or unique id prefix; non-UTF-8 content is base64 with encoding \"base64\"",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scribble id or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetScribble)

	// remove_scribble
	s.server.AddTool(&mcp.Tool{
		Name:        "remove_scribble",
		Description: "Delete a scribble and its tag associations",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scribble id or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleRemoveScribble)

	// add_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "add_tag",
		Description: "Add a tag to a scribble",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scribble id or prefix"},
				"tag": {"type": "string", "description": "Tag name"}
			},
			"required": ["id", "tag"]
		}`),
	}, s.handleAddTag)

	// remove_tag
	s.server.AddTool(&mcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a tag from a scribble",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Scribble id or prefix"},
				"tag": {"type": "string", "description": "Tag name"}
			},
			"required": ["id", "tag"]
		}`),
	}, s.handleRemoveTag)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List tags, or the tags of one scribble when id is given",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Optional scribble id or prefix"}
			}
		}`),
	}, s.handleListTags)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolJSON(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return toolText(string(data))
}

// describe turns resolver errors into something an agent can act on.
func describe(err error) string {
	var ambiguous *store.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		return fmt.Sprintf("prefix %q is ambiguous, specify more characters; candidates: %s",
			ambiguous.Prefix, strings.Join(ambiguous.Candidates, ", "))
	case errors.Is(err, store.ErrNotFound):
		return "no such scribble"
	default:
		return err.Error()
	}
}

// Tool handlers.
func (s *Server) handleAddScribble(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Content) == "" {
		return toolError("scribble content cannot be empty"), nil
	}

	id, err := s.store.Add([]byte(params.Content))
	if err != nil {
		return toolError("failed to add scribble: %v", err), nil
	}

	for _, tag := range params.Tags {
		if err := s.store.Tag(id, tag); err != nil {
			return toolError("stored %s but failed to tag %q: %v", id, tag, err), nil
		}
	}

	return toolText(fmt.Sprintf("Stored scribble %s", id)), nil
}

func (s *Server) handleListScribbles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Tag   string `json:"tag"`
		Limit int    `json:"limit"`
	}
	params.Limit = 20
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var (
		entries any
		err     error
	)
	if params.Tag != "" {
		entries, err = s.store.ListTagged(params.Tag, params.Limit)
	} else {
		entries, err = s.store.List(params.Limit)
	}
	if err != nil {
		return toolError("failed to list scribbles: %v", err), nil
	}
	return toolJSON(entries), nil
}

func (s *Server) handleGetScribble(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	sc, err := s.store.Get(params.ID)
	if err != nil {
		return toolError("%s", describe(err)), nil
	}
	names, err := s.store.TagsOf(sc.ID)
	if err != nil {
		return toolError("failed to read tags: %v", err), nil
	}

	result := map[string]any{
		"id":         sc.ID,
		"content":    string(sc.Content),
		"created_at": sc.CreatedAt,
		"tags":       names,
	}
	// JSON strings cannot carry arbitrary bytes.
	if !utf8.Valid(sc.Content) {
		result["content"] = base64.StdEncoding.EncodeToString(sc.Content)
		result["encoding"] = "base64"
	}
	return toolJSON(result), nil
}

func (s *Server) handleRemoveScribble(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.store.Resolve(params.ID)
	if err != nil {
		return toolError("%s", describe(err)), nil
	}
	if err := s.store.Remove(id); err != nil {
		return toolError("failed to remove scribble: %v", err), nil
	}
	return toolText(fmt.Sprintf("Removed scribble %s", id)), nil
}

func (s *Server) handleAddTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID  string `json:"id"`
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.store.Resolve(params.ID)
	if err != nil {
		return toolError("%s", describe(err)), nil
	}
	if err := s.store.Tag(id, params.Tag); err != nil {
		return toolError("failed to add tag: %v", err), nil
	}
	return toolText(fmt.Sprintf("Tagged %s with %q", id, params.Tag)), nil
}

func (s *Server) handleRemoveTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID  string `json:"id"`
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.store.Resolve(params.ID)
	if err != nil {
		return toolError("%s", describe(err)), nil
	}
	if err := s.store.Untag(id, params.Tag); err != nil {
		return toolError("failed to remove tag: %v", err), nil
	}
	return toolText(fmt.Sprintf("Removed tag %q from %s", params.Tag, id)), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return nil, err
		}
	}

	if params.ID == "" {
		all, err := s.store.AllTags()
		if err != nil {
			return toolError("failed to list tags: %v", err), nil
		}
		return toolJSON(all), nil
	}

	id, err := s.store.Resolve(params.ID)
	if err != nil {
		return toolError("%s", describe(err)), nil
	}
	names, err := s.store.TagsOf(id)
	if err != nil {
		return toolError("failed to list tags: %v", err), nil
	}
	if names == nil {
		names = []string{}
	}
	return toolJSON(names), nil
}
