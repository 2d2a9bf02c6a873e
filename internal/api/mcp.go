package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/render"
	"github.com/cvforge/cvforge/internal/resume"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Source      string
	DefaultMode filter.Mode
}

// NewMCPServer creates an MCP server exposing the resume renderer as tools
// and the unfiltered rendering as a resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"cvforge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("cvforge — render a tagged YAML resume as Markdown, filtered to the tags relevant for a target role."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("render_resume",
			mcp.WithDescription("Render the resume as Markdown, keeping only bullets that match the tag filters."),
			mcp.WithString("include", mcp.Description("Comma-separated tags a bullet must match (empty keeps all)")),
			mcp.WithString("exclude", mcp.Description("Comma-separated tags that hide a bullet")),
			mcp.WithString("mode", mcp.Description("Include match mode: any (overlap) or all (subset)")),
		),
		mcpRenderResume(deps),
	)

	s.AddTool(
		mcp.NewTool("list_tags",
			mcp.WithDescription("List the distinct bullet tags in the resume with their bullet counts."),
		),
		mcpListTags(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"resume://markdown",
			"Rendered Resume",
			mcp.WithResourceDescription("Full resume rendering with no tag filters applied"),
			mcp.WithMIMEType("text/markdown"),
		),
		mcpResourceMarkdown(deps),
	)

	return s
}

func mcpRenderResume(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode := req.GetString("mode", string(deps.DefaultMode))
		sel, err := filter.NewSelection(req.GetString("include", ""), req.GetString("exclude", ""), mode)
		if err != nil {
			return mcpError(err.Error()), nil
		}

		doc, err := resume.Load(deps.Source)
		if err != nil {
			return mcpError(fmt.Sprintf("loading resume: %v", err)), nil
		}

		return mcpText(render.Build(doc, sel)), nil
	}
}

func mcpListTags(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := resume.Load(deps.Source)
		if err != nil {
			return mcpError(fmt.Sprintf("loading resume: %v", err)), nil
		}

		inventory := doc.TagInventory()
		if inventory == nil {
			inventory = []resume.TagCount{}
		}

		b, err := json.Marshal(inventory)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal tags: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceMarkdown(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		doc, err := resume.Load(deps.Source)
		if err != nil {
			return nil, fmt.Errorf("loading resume: %w", err)
		}

		sel := filter.Selection{Mode: deps.DefaultMode}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     render.Build(doc, sel),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
