package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/omarsolutions/ado-instructions/internal/derive"
)

// OrgContextTool handles the get_organization_context MCP tool.
type OrgContextTool struct {
	org derive.OrganizationContext
}

// NewOrgContextTool creates an OrgContextTool.
func NewOrgContextTool(org derive.OrganizationContext) *OrgContextTool {
	return &OrgContextTool{org: org}
}

// Definition returns the MCP tool definition for registration.
func (t *OrgContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_organization_context",
		mcp.WithDescription(
			"Return the organization context used to template generated work items, "+
				"plus the work item hierarchy, priority level meanings, and typical "+
				"task categories.",
		),
	)
}

// Handle processes the get_organization_context tool call.
func (t *OrgContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := struct {
		Organization struct {
			Name       string   `json:"name"`
			FocusAreas []string `json:"focus_areas"`
			Platform   string   `json:"platform"`
			Scale      string   `json:"scale"`
		} `json:"organization"`
		WorkItemHierarchy     map[string]string `json:"work_item_hierarchy"`
		PriorityLevels        map[string]string `json:"priority_levels"`
		TypicalTaskCategories []string          `json:"typical_task_categories"`
	}{
		WorkItemHierarchy: map[string]string{
			"Epic":       "Main functionality/feature - parent work item",
			"Task":       "Individual implementation steps - child of Epic",
			"User Story": "User-focused requirements - can be child of Epic",
			"Bug":        "Defect tracking - standalone or child work item",
		},
		PriorityLevels: map[string]string{
			"Critical": "Urgent items affecting system stability",
			"High":     "Important features for core functionality",
			"Medium":   "Standard features and enhancements",
			"Low":      "Nice-to-have features and minor improvements",
		},
		TypicalTaskCategories: []string{
			"Architecture and Design",
			"Backend Implementation",
			"Frontend/UI Development",
			"Testing and Quality Assurance",
			"Deployment and DevOps",
			"Documentation",
			"Code Review and Optimization",
		},
	}
	resp.Organization.Name = t.org.Name
	resp.Organization.FocusAreas = t.org.FocusAreas
	resp.Organization.Platform = t.org.Platform
	resp.Organization.Scale = t.org.Scale

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling organization context: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
