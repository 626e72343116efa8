package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// ValidateTool handles the validate_ado_structure MCP tool.
type ValidateTool struct {
	log *zap.Logger
}

// NewValidateTool creates a ValidateTool.
func NewValidateTool(log *zap.Logger) *ValidateTool {
	return &ValidateTool{log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_ado_structure",
		mcp.WithDescription(
			"Validate an ADO instruction set against the expected structure: required fields, "+
				"known work item types and priorities, and the Epic/Task hierarchy. Returns a "+
				"report listing every issue with its field path and severity. Malformed input "+
				"is reported as an issue, never as a tool failure.",
		),
		mcp.WithString("instructions_json",
			mcp.Required(),
			mcp.Description("The instruction set JSON to validate, as produced by the generation tools."),
		),
	)
}

// Handle processes the validate_ado_structure tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("instructions_json", "")
	if raw == "" {
		return mcp.NewToolResultError("instructions_json must not be empty"), nil
	}

	report := workitem.ValidateJSON(raw)
	t.log.Info("validated instruction set",
		zap.Bool("is_valid", report.IsValid),
		zap.Int("issues", len(report.Issues)))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling validation report: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
