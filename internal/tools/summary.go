package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// SummaryTool handles the format_ado_instructions_summary MCP tool.
type SummaryTool struct {
	log *zap.Logger
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(log *zap.Logger) *SummaryTool {
	return &SummaryTool{log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("format_ado_instructions_summary",
		mcp.WithDescription(
			"Render an ADO instruction set as a human-readable summary: project header, "+
				"epic/task counts, and the full hierarchy with priorities and effort estimates. "+
				"Use this to review generated work items before creating them in Azure DevOps.",
		),
		mcp.WithString("instructions_json",
			mcp.Required(),
			mcp.Description("The instruction set JSON to format, as produced by the generation tools."),
		),
	)
}

// Handle processes the format_ado_instructions_summary tool call.
func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("instructions_json", "")
	if raw == "" {
		return mcp.NewToolResultError("instructions_json must not be empty"), nil
	}

	set, err := decodeInstructions(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.Debug("formatted instruction summary",
		zap.String("project", set.ProjectName),
		zap.Int("epics", len(set.Epics)))

	return mcp.NewToolResultText(workitem.FormatSummary(set)), nil
}
