package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/derive"
	"github.com/omarsolutions/ado-instructions/internal/vision"
)

// ImageTool handles the process_feature_image MCP tool. It converts
// workflow diagrams and project visuals into work items, either through
// a configured vision analyzer or from pre-computed analysis JSON.
type ImageTool struct {
	analyzer vision.Analyzer
	vocab    derive.Vocabulary
	org      derive.OrganizationContext
	log      *zap.Logger
}

// NewImageTool creates an ImageTool with its dependencies.
func NewImageTool(analyzer vision.Analyzer, vocab derive.Vocabulary, org derive.OrganizationContext, log *zap.Logger) *ImageTool {
	return &ImageTool{analyzer: analyzer, vocab: vocab, org: org, log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *ImageTool) Definition() mcp.Tool {
	return mcp.NewTool("process_feature_image",
		mcp.WithDescription(
			"Convert a workflow diagram, wireframe, or project visual into Azure DevOps work items. "+
				"Dependency arrows in the image become a single Epic with sequential Tasks. "+
				"Provide analysis_json when the image was already analyzed by a vision model; "+
				"otherwise the configured analyzer is used. When no analyzer is available the "+
				"description text is processed through the text pipeline instead.",
		),
		mcp.WithString("image_base64",
			mcp.Description("Base64 encoded image data, e.g. from load_image_from_file."),
		),
		mcp.WithString("description",
			mcp.Description("Context about the image. Also serves as the text-pipeline fallback when vision is unavailable."),
		),
		mcp.WithString("analysis_json",
			mcp.Description("Pre-computed vision analysis (JSON or raw model output). Skips the analyzer when set."),
		),
		mcp.WithString("project_name",
			mcp.Description("Project name for the generated work items."),
		),
	)
}

// Handle processes the process_feature_image tool call.
func (t *ImageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imageBase64 := req.GetString("image_base64", "")
	description := req.GetString("description", "")
	analysisJSON := req.GetString("analysis_json", "")
	projectName := req.GetString("project_name", "")

	if imageBase64 == "" && analysisJSON == "" && strings.TrimSpace(description) == "" {
		return mcp.NewToolResultError("provide image_base64, analysis_json, or a description"), nil
	}

	analysis, notices, err := t.resolveAnalysis(ctx, imageBase64, description, analysisJSON)
	if err != nil {
		if errors.Is(err, vision.ErrNotConfigured) && strings.TrimSpace(description) != "" {
			// Text-pipeline fallback keeps the tool usable without vision.
			t.log.Warn("vision unavailable, deriving from description text")
			res := derive.DeriveFromText(description, projectName, "", t.vocab, t.org, t.log)
			res.Notices = append(res.Notices, "vision analysis unavailable; derived from description text only")
			return instructionResult(res.Instructions, res.Notices)
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := vision.BuildInstructions(analysis, t.vocab, t.org)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if projectName != "" {
		res.Instructions.ProjectName = projectName
	}
	res.Notices = append(notices, res.Notices...)

	t.log.Info("processed feature image",
		zap.Int("tasks", res.Instructions.TaskCount()),
		zap.Bool("arrows_detected", analysis.WorkflowAnalysis.ArrowsDetected))

	return instructionResult(res.Instructions, res.Notices)
}

// resolveAnalysis obtains a vision analysis: pre-computed JSON wins,
// then the configured analyzer.
func (t *ImageTool) resolveAnalysis(ctx context.Context, imageBase64, description, analysisJSON string) (vision.Analysis, []string, error) {
	if analysisJSON != "" {
		return vision.ParseAnalysis(analysisJSON), []string{"used caller-provided analysis"}, nil
	}
	if imageBase64 == "" {
		return vision.Analysis{}, nil, vision.ErrNotConfigured
	}
	a, err := t.analyzer.Analyze(ctx, vision.Image{Base64: imageBase64}, description)
	if err != nil {
		return vision.Analysis{}, nil, err
	}
	return a, nil, nil
}
