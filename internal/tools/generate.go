package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/derive"
)

// GenerateTool handles the generate_ado_workitems_from_text MCP tool,
// the general-purpose variant of transcript processing for arbitrary
// requirement text.
type GenerateTool struct {
	vocab derive.Vocabulary
	org   derive.OrganizationContext
	log   *zap.Logger
}

// NewGenerateTool creates a GenerateTool with its dependencies.
func NewGenerateTool(vocab derive.Vocabulary, org derive.OrganizationContext, log *zap.Logger) *GenerateTool {
	return &GenerateTool{vocab: vocab, org: org, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_ado_workitems_from_text",
		mcp.WithDescription(
			"Generate Azure DevOps work items from any requirement text: feature descriptions, "+
				"user feedback, tickets, or informal notes. Returns an Epic/Task hierarchy as JSON "+
				"with a validation report. The tool always produces a usable structure, falling back "+
				"to sensible defaults when the text is sparse.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The requirement text to convert into work items."),
		),
		mcp.WithString("project_name",
			mcp.Description("Project name for the generated work items. Derived from the content when empty."),
		),
		mcp.WithString("priority",
			mcp.Description("Priority override applied to every generated epic."),
			mcp.Enum("Critical", "High", "Medium", "Low"),
		),
	)
}

// Handle processes the generate_ado_workitems_from_text tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Empty input degrades to the default epic rather than failing; the
	// notices in the response say so.
	text := req.GetString("text", "")
	res := derive.DeriveFromText(text,
		req.GetString("project_name", ""),
		req.GetString("priority", ""),
		t.vocab, t.org, t.log)

	t.log.Info("generated work items from text",
		zap.Int("epics", len(res.Instructions.Epics)),
		zap.Int("tasks", res.Instructions.TaskCount()))

	return instructionResult(res.Instructions, res.Notices)
}
