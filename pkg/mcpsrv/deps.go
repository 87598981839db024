package mcpsrv

import (
	"github.com/usestring/videoquery-mcp/internal/config"
	"github.com/usestring/videoquery-mcp/internal/query"
	"github.com/usestring/videoquery-mcp/internal/schema"
	"github.com/usestring/videoquery-mcp/pkg/client"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client     *client.Client
	Config     *config.Config
	Query      *query.Engine
	Conditions *schema.Validator
}
