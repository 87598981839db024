package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/videoquery-mcp/pkg/types"
)

// ValidateConditionsInput is the input for research_validate_conditions.
type ValidateConditionsInput struct {
	Query any `json:"query" jsonschema:"Condition tree to check before calling research_query_videos"`
}

// ToolValidateConditions checks a condition tree against the known shape.
// The Research API stays the authority; this only catches obvious mistakes early.
func ToolValidateConditions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateConditionsInput) (*sdkmcp.CallToolResult, types.ValidationResult, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateConditionsInput) (*sdkmcp.CallToolResult, types.ValidationResult, error) {
		if input.Query == nil {
			return nil, types.ValidationResult{}, ErrInvalidInput("query is required")
		}
		return nil, *d.Conditions.ValidateValue(input.Query), nil
	}
}
