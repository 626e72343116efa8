package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/filesearch"
)

// SearchTool handles the search_files_for_processing MCP tool.
type SearchTool struct {
	searcher *filesearch.Searcher
	log      *zap.Logger
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(searcher *filesearch.Searcher, log *zap.Logger) *SearchTool {
	return &SearchTool{searcher: searcher, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_files_for_processing",
		mcp.WithDescription(
			"Find image and text files in common locations (desktop, documents, downloads, "+
				"pictures, current directory) so they can be processed without knowing exact paths. "+
				"Supports substring patterns like 'wireframe' and globs like '*.png'.",
		),
		mcp.WithString("search_pattern",
			mcp.Description("Filename pattern: a substring, a glob like '*.png', or empty for all files."),
		),
		mcp.WithString("file_types",
			mcp.Description("Comma-separated file kinds to search: 'images', 'text', or 'all'. Defaults to 'images,text'."),
		),
		mcp.WithString("search_locations",
			mcp.Description("Comma-separated locations: 'desktop', 'documents', 'downloads', 'pictures', 'current', or 'all'. Defaults to 'desktop,documents,downloads'."),
		),
		mcp.WithString("format",
			mcp.Description("Response format. 'text' renders a readable listing, 'json' returns raw results."),
			mcp.Enum("text", "json"),
		),
	)
}

// Handle processes the search_files_for_processing tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := t.searcher.Search(
		req.GetString("search_pattern", ""),
		req.GetString("file_types", ""),
		req.GetString("search_locations", ""),
	)

	t.log.Info("file search completed",
		zap.String("pattern", res.Summary.Pattern),
		zap.Int("found", res.Summary.TotalFound))

	if req.GetString("format", "text") == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling search results: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(filesearch.FormatResults(res)), nil
}
