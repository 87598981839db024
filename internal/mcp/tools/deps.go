package tools

import (
	"github.com/usestring/videoquery-mcp/internal/config"
	"github.com/usestring/videoquery-mcp/internal/query"
	"github.com/usestring/videoquery-mcp/internal/schema"
	"github.com/usestring/videoquery-mcp/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client     *client.Client
	Config     *config.Config
	Query      *query.Engine
	Conditions *schema.Validator
}
