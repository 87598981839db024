package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "build_video_query",
		Description: "RECOMMENDED: Turn a research question into a research_query_videos call. Explains the condition tree, date limits, and paging with cursor/search_id.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What to look for (e.g., 'cooking videos with #airfryer in the US')",
				Required:    false,
			},
			{
				Name:        "start_date",
				Description: "First day to search, YYYYMMDD",
				Required:    false,
			},
			{
				Name:        "end_date",
				Description: "Last day to search, YYYYMMDD",
				Required:    false,
			},
		},
	}, HandleBuildVideoQuery(cfg))
}
