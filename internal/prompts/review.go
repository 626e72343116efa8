package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the ado-review MCP prompt, a quick validation
// pass over an already generated instruction set.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("ado-review",
		mcp.WithPromptDescription(
			"Review a generated ADO instruction set: validate the structure, "+
				"summarize the hierarchy, and flag anything worth fixing before "+
				"the work items are created in Azure DevOps.",
		),
	)
}

// Handle processes the ado-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Review generated ADO work items",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Review the most recently generated ADO instruction set.\n\n" +
						"Please:\n" +
						"1. Run `validate_ado_structure` on the instructions JSON\n" +
						"2. Run `format_ado_instructions_summary` so I can read the hierarchy\n" +
						"3. List every validation issue with its severity and what to change\n" +
						"4. Flag epics with no tasks, vague titles, or priorities that look wrong\n" +
						"5. Tell me whether the set is ready to create in Azure DevOps",
				),
			},
		},
	}, nil
}
