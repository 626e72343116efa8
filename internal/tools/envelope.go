// Package tools implements the MCP tool handlers for the ADO
// instructions server.
//
// Each tool lives in its own file as a struct that receives its
// dependencies at construction and exposes Definition/Handle. Handlers
// return tool-level errors (mcp.NewToolResultError) for bad input and
// Go errors only for internal failures.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// instructionResponse is the wire envelope every generation tool
// returns: the instruction set itself, the fallback notices taken while
// deriving it, and the structural validation verdict.
type instructionResponse struct {
	workitem.InstructionSet
	ProcessingNotices []string                  `json:"processing_notices,omitempty"`
	Validation        workitem.ValidationReport `json:"validation"`
}

// instructionResult marshals the envelope into a text tool result.
func instructionResult(set workitem.InstructionSet, notices []string) (*mcp.CallToolResult, error) {
	resp := instructionResponse{
		InstructionSet:    set,
		ProcessingNotices: notices,
		Validation:        workitem.Validate(set),
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling instructions: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// decodeInstructions parses an instruction set a client sends back in,
// tolerating the envelope fields generation tools add.
func decodeInstructions(raw string) (workitem.InstructionSet, error) {
	var set workitem.InstructionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return workitem.InstructionSet{}, fmt.Errorf("instructions_json is not valid JSON: %w", err)
	}
	return set, nil
}
