// Package tools contains MCP tool implementations for the Research API.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constant.
const MimeJSON = "application/json"

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "research_query_videos",
		Description: "Query the TikTok Research API for videos matching a condition tree and date range. Returns one page; use the cursor and search_id from the summary to fetch the next page. Set jq to project the response (e.g. '.data.videos[] | {id, username}') instead of returning it whole.",
	}, ToolQueryVideos(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "research_validate_conditions",
		Description: "Check a condition tree ({and|or|not: [{operation, field_name, field_values}]}) for structural mistakes before running research_query_videos. Does not call the API.",
	}, ToolValidateConditions(d))
}
