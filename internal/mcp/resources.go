package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/videoquery-mcp/internal/mcp/tools"
	"github.com/usestring/videoquery-mcp/pkg/client"
	"github.com/usestring/videoquery-mcp/pkg/types"
)

// Resource URI scheme: research://
// Supported URIs:
//   research://fields
//   research://schema/conditions

const (
	fieldsURI           = "research://fields"
	conditionsSchemaURI = "research://schema/conditions"
)

// registerResources registers static reference resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         fieldsURI,
		Name:        "Video Fields",
		Description: "Field names accepted in research_query_videos `fields`, and the server defaults used when it is omitted.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceFields)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         conditionsSchemaURI,
		Name:        "Condition Schema",
		Description: "JSON Schema of the query condition tree checked by research_validate_conditions.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceConditionsSchema)
}

func (s *Server) handleResourceFields(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return jsonResource(fieldsURI, types.FieldList{
		Fields:   client.VideoFields,
		Defaults: s.deps.Config.DefaultFields,
	})
}

func (s *Server) handleResourceConditionsSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return jsonResource(conditionsSchemaURI, s.deps.Conditions.Schema())
}

func jsonResource(uri string, v any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding resource %s: %w", uri, err)
	}
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{URI: uri, MIMEType: tools.MimeJSON, Text: string(data)},
		},
	}, nil
}
