package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/vision"
)

// LoadImageTool handles the load_image_from_file MCP tool, reading an
// image from disk into base64 for process_feature_image.
type LoadImageTool struct {
	log *zap.Logger
}

// NewLoadImageTool creates a LoadImageTool.
func NewLoadImageTool(log *zap.Logger) *LoadImageTool {
	return &LoadImageTool{log: log}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadImageTool) Definition() mcp.Tool {
	return mcp.NewTool("load_image_from_file",
		mcp.WithDescription(
			"Load an image file from disk and return it base64 encoded, ready to pass to "+
				"process_feature_image. Supports .png, .jpg, .jpeg, .gif, .bmp and .webp up to 10MB. "+
				"Use search_files_for_processing first if you do not know the exact path.",
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute or relative path to the image file."),
		),
	)
}

// Handle processes the load_image_from_file tool call.
func (t *LoadImageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("file_path", "")
	if path == "" {
		return mcp.NewToolResultError("file_path must not be empty"), nil
	}

	img, err := vision.LoadImage(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.Info("loaded image",
		zap.String("name", img.Name),
		zap.Int64("size_bytes", img.SizeBytes))

	resp := struct {
		Name      string `json:"name"`
		MIMEType  string `json:"mime_type"`
		SizeBytes int64  `json:"size_bytes"`
		Base64    string `json:"image_base64"`
	}{img.Name, img.MIMEType, img.SizeBytes, img.Base64}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshaling image payload: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
