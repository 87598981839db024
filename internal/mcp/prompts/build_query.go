package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBuildVideoQuery walks the model through composing a video query.
func HandleBuildVideoQuery(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var topic, startDate, endDate string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			topic = args["topic"]
			startDate = args["start_date"]
			endDate = args["end_date"]
		}

		var sb strings.Builder

		sb.WriteString("# Build a Research API Video Query\n\n")
		if topic != "" {
			fmt.Fprintf(&sb, "**Goal**: %s\n\n", topic)
		}

		sb.WriteString("## Condition Tree\n\n")
		sb.WriteString("`query` is an object with up to three lists: `and` (all must match), `or` (at least one), `not` (none may match).\n")
		sb.WriteString("Each item is `{\"operation\": OP, \"field_name\": FIELD, \"field_values\": [..]}` with OP one of EQ, IN, GT, GTE, LT, LTE.\n")
		sb.WriteString("All `field_values` are strings, including numbers and dates.\n\n")
		sb.WriteString("Example:\n\n")
		sb.WriteString("```json\n")
		sb.WriteString(`{"and": [{"operation": "IN", "field_name": "region_code", "field_values": ["US", "CA"]},`)
		sb.WriteString("\n")
		sb.WriteString(`         {"operation": "EQ", "field_name": "hashtag_name", "field_values": ["airfryer"]}]}`)
		sb.WriteString("\n```\n\n")
		sb.WriteString("Run `research_validate_conditions` first if the tree is hand-written.\n\n")

		sb.WriteString("## Dates\n\n")
		sb.WriteString("- `start_date` and `end_date` are YYYYMMDD in UTC\n")
		sb.WriteString("- `end_date` may be at most 30 days after `start_date`; split longer periods into several queries\n")
		if startDate != "" || endDate != "" {
			fmt.Fprintf(&sb, "- Requested window: %s to %s\n", orPlaceholder(startDate), orPlaceholder(endDate))
		}
		sb.WriteString("\n")

		sb.WriteString("## Fields\n\n")
		if len(cfg.DefaultFields) > 0 {
			fmt.Fprintf(&sb, "Omit `fields` to get the server defaults: `%s`.\n", strings.Join(cfg.DefaultFields, ","))
		}
		if len(cfg.VideoFields) > 0 {
			fmt.Fprintf(&sb, "Available: `%s`.\n", strings.Join(cfg.VideoFields, "`, `"))
		}
		sb.WriteString("\n")

		sb.WriteString("## Paging\n\n")
		sb.WriteString("Each call returns one page. When `summary.has_more` is true, call again with the returned `cursor` and `search_id`, keeping every other argument the same.\n")
		sb.WriteString("Use `jq` (e.g. `.data.videos[] | {id, username, view_count}`) to keep responses small.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Research API video query guide",
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
