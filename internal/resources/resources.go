// Package resources implements MCP resource handlers for the ADO
// instructions server.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (ado://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/omarsolutions/ado-instructions/internal/derive"
)

// OrganizationURI addresses the organization context resource.
const OrganizationURI = "ado://organization/context"

// Handler manages the server's resource endpoints.
type Handler struct {
	org derive.OrganizationContext
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(org derive.OrganizationContext) *Handler {
	return &Handler{org: org}
}

// OrganizationResource returns the MCP resource definition for the
// organization context.
func (h *Handler) OrganizationResource() mcp.Resource {
	return mcp.NewResource(
		OrganizationURI,
		"Organization Context",
		mcp.WithResourceDescription("Organization metadata used to template generated work items"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleOrganization returns the organization context as JSON.
func (h *Handler) HandleOrganization(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload := struct {
		Name       string   `json:"name"`
		FocusAreas []string `json:"focus_areas"`
		Platform   string   `json:"platform"`
		Scale      string   `json:"scale"`
	}{h.org.Name, h.org.FocusAreas, h.org.Platform, h.org.Scale}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling organization context: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
