// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/config"
	"github.com/omarsolutions/ado-instructions/internal/derive"
	"github.com/omarsolutions/ado-instructions/internal/filesearch"
	"github.com/omarsolutions/ado-instructions/internal/prompts"
	"github.com/omarsolutions/ado-instructions/internal/resources"
	"github.com/omarsolutions/ado-instructions/internal/tools"
	"github.com/omarsolutions/ado-instructions/internal/vision"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(cfg *config.Config, log *zap.Logger) (*server.MCPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	// --- Create shared dependencies ---

	vocab := derive.DefaultVocabulary().WithOverrides(
		cfg.Vocabulary.ExtraFeatures, cfg.Vocabulary.ExtraRequirementVerbs)
	org := derive.OrganizationContext{
		Name:       cfg.Organization.Name,
		FocusAreas: cfg.Organization.FocusAreas,
		Platform:   cfg.Organization.Platform,
		Scale:      cfg.Organization.Scale,
	}
	searcher := filesearch.NewSearcher()

	// The vision model is invoked by the MCP host, not by this server;
	// image tools consume its output through the analysis_json
	// parameter. The analyzer seam stays for deployments that bring
	// their own backend.
	var analyzer vision.Analyzer = vision.Disabled{}
	if cfg.Vision.Enabled() {
		log.Info("vision configuration present; image analysis flows through analysis_json",
			zap.String("deployment", cfg.Vision.Deployment),
			zap.String("model", cfg.Vision.Model))
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"ado-instructions",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(org)),
	)

	// --- Register tools ---

	transcriptTool := tools.NewTranscriptTool(vocab, org, log)
	s.AddTool(transcriptTool.Definition(), transcriptTool.Handle)

	generateTool := tools.NewGenerateTool(vocab, org, log)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	imageTool := tools.NewImageTool(analyzer, vocab, org, log)
	s.AddTool(imageTool.Definition(), imageTool.Handle)

	loadImageTool := tools.NewLoadImageTool(log)
	s.AddTool(loadImageTool.Definition(), loadImageTool.Handle)

	validateTool := tools.NewValidateTool(log)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	summaryTool := tools.NewSummaryTool(log)
	s.AddTool(summaryTool.Definition(), summaryTool.Handle)

	orgTool := tools.NewOrgContextTool(org)
	s.AddTool(orgTool.Definition(), orgTool.Handle)

	searchTool := tools.NewSearchTool(searcher, log)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(org)
	s.AddResource(resourceHandler.OrganizationResource(), resourceHandler.HandleOrganization)

	log.Info("mcp server configured",
		zap.String("version", Version),
		zap.String("organization", org.Name))

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the server effectively.
func serverInstructions(org derive.OrganizationContext) string {
	return fmt.Sprintf(`You have access to the %s ADO Instructions server.
It converts meeting notes, requirement text, and workflow images into
hierarchical Azure DevOps work items (Epics containing Tasks).

## Core workflow

1. Get the source material:
   - Text: the user pastes meeting notes or requirements
   - Files: use search_files_for_processing to locate them, and
     load_image_from_file for images
2. Generate work items:
   - process_meeting_transcript for meeting notes
   - generate_ado_workitems_from_text for any other requirement text
   - process_feature_image for diagrams and wireframes; pass the image
     analysis you produced as analysis_json
3. Review:
   - format_ado_instructions_summary renders the hierarchy for the user
   - validate_ado_structure reports structural issues with severities

## Things to know

- Generation NEVER fails on sparse input: the tools fall back to a
  default epic and task set, and report every fallback they took in the
  processing_notices field. Surface those notices to the user.
- Priorities are Critical, High, Medium, or Low. Pass the priority
  parameter to override classification; unrecognized values are ignored
  with a notice, never an error.
- Dependency chains in text ("database -> api -> frontend") collapse
  into ONE epic with sequential tasks. The same applies to arrows
  detected in workflow images.
- Work item descriptions are templated for %s (focus: %s). Read the
  ado://organization/context resource or call get_organization_context
  to see the full context.
- Validation warnings (e.g. an epic with no tasks) do not make the set
  invalid; errors do. Tell the user which is which.`,
		org.Name, org.Name, joinFocus(org.FocusAreas))
}

func joinFocus(areas []string) string {
	if len(areas) == 0 {
		return "general delivery"
	}
	out := areas[0]
	for _, a := range areas[1:] {
		out += ", " + a
	}
	return out
}
