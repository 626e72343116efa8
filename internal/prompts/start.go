// Package prompts implements MCP prompt handlers for the ADO
// instructions server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the ado-start MCP prompt. It guides the AI
// through the full notes-to-work-items workflow.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("ado-start",
		mcp.WithPromptDescription(
			"Turn meeting notes, requirement text, or a workflow image into "+
				"Azure DevOps work items. Walks through processing, review, and validation.",
		),
		mcp.WithArgument("source",
			mcp.ArgumentDescription(
				"What to process: 'notes' for meeting notes or text, 'image' for a workflow diagram or wireframe. Default: notes",
			),
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Project name for the generated work items"),
		),
	)
}

// Handle processes the ado-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	source := "notes"
	projectName := ""
	if args := req.Params.Arguments; args != nil {
		if s, ok := args["source"]; ok && s != "" {
			source = s
		}
		if n, ok := args["project_name"]; ok && n != "" {
			projectName = n
		}
	}

	nameClause := ""
	if projectName != "" {
		nameClause = fmt.Sprintf(" with project_name='%s'", projectName)
	}

	var steps string
	if source == "image" {
		steps = "1. If I haven't given you a file path, run `search_files_for_processing` with file_types='images' to find candidates\n" +
			"2. Run `load_image_from_file` with the chosen path\n" +
			"3. Run `process_feature_image` with the returned image_base64" + nameClause + "\n" +
			"4. Show me the result with `format_ado_instructions_summary`\n" +
			"5. Run `validate_ado_structure` and point out any warnings"
	} else {
		steps = "1. Ask me to paste the meeting notes or requirement text\n" +
			"2. Run `process_meeting_transcript` with the text" + nameClause + "\n" +
			"3. Show me the result with `format_ado_instructions_summary`\n" +
			"4. Run `validate_ado_structure` and point out any warnings\n" +
			"5. Ask whether the priorities look right; re-run with a priority override if not"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Generate ADO work items from %s", source),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to generate Azure DevOps work items from %s.\n\nPlease:\n%s",
					source, steps,
				)),
			},
		},
	}, nil
}
