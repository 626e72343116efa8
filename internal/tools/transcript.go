package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/derive"
)

// TranscriptTool handles the process_meeting_transcript MCP tool. It
// turns free-text meeting notes into a hierarchical ADO instruction set.
type TranscriptTool struct {
	vocab derive.Vocabulary
	org   derive.OrganizationContext
	log   *zap.Logger
}

// NewTranscriptTool creates a TranscriptTool with its dependencies.
func NewTranscriptTool(vocab derive.Vocabulary, org derive.OrganizationContext, log *zap.Logger) *TranscriptTool {
	return &TranscriptTool{vocab: vocab, org: org, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *TranscriptTool) Definition() mcp.Tool {
	return mcp.NewTool("process_meeting_transcript",
		mcp.WithDescription(
			"Convert free-text meeting notes into structured Azure DevOps work items. "+
				"Extracts features and requirements from the transcript, classifies priority, "+
				"detects dependency chains (e.g. 'database -> api -> frontend'), and returns "+
				"an Epic/Task hierarchy as JSON, ready to create in ADO.",
		),
		mcp.WithString("transcript",
			mcp.Required(),
			mcp.Description("The raw meeting notes or transcript text to process."),
		),
		mcp.WithString("project_name",
			mcp.Description("Project name for the generated work items. Derived from the content when empty."),
		),
		mcp.WithString("priority",
			mcp.Description("Priority override applied to every generated epic. When empty the priority is classified from the text."),
			mcp.Enum("Critical", "High", "Medium", "Low"),
		),
	)
}

// Handle processes the process_meeting_transcript tool call.
func (t *TranscriptTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Empty input is not an error: the pipeline degrades to the default
	// epic and reports it through processing_notices.
	transcript := req.GetString("transcript", "")
	projectName := req.GetString("project_name", "")
	priority := req.GetString("priority", "")

	res := derive.DeriveFromText(transcript, projectName, priority, t.vocab, t.org, t.log)
	t.log.Info("processed meeting transcript",
		zap.Int("epics", len(res.Instructions.Epics)),
		zap.Int("tasks", res.Instructions.TaskCount()),
		zap.Int("notices", len(res.Notices)))

	return instructionResult(res.Instructions, res.Notices)
}
