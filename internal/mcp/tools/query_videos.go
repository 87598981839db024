package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/videoquery-mcp/pkg/client"
	"github.com/usestring/videoquery-mcp/pkg/types"
)

// QueryVideosInput is the input for research_query_videos.
type QueryVideosInput struct {
	Fields     []string `json:"fields,omitempty" jsonschema:"Video fields to return, e.g. id, username, view_count (default: server DEFAULT_FIELDS)"`
	Query      any      `json:"query" jsonschema:"Condition tree: {and|or|not: [{operation, field_name, field_values}]}. Sent to the API unchanged"`
	StartDate  string   `json:"start_date" jsonschema:"Lower bound of video create time, YYYYMMDD (UTC)"`
	EndDate    string   `json:"end_date" jsonschema:"Upper bound of video create time, YYYYMMDD (UTC); at most 30 days after start_date"`
	MaxCount   *int     `json:"max_count,omitempty" jsonschema:"Videos per page (default: 20, API max: 100)"`
	Cursor     *int64   `json:"cursor,omitempty" jsonschema:"Resume from this index (from a previous response)"`
	SearchID   *string  `json:"search_id,omitempty" jsonschema:"Cached search identifier from a previous response; pass with cursor to page consistently"`
	IsRandom   *bool    `json:"is_random,omitempty" jsonschema:"Return results in random order"`
	JQ         string   `json:"jq,omitempty" jsonschema:"Optional JQ expression applied to the response, e.g. '.data.videos[].id'"`
	MaxResults int      `json:"max_results,omitempty" jsonschema:"Max jq values to return (default: JQ_MAX_RESULTS)"`
}

// ToolQueryVideos runs one Research API video query.
// Absent optional inputs are left out of the outgoing request.
func ToolQueryVideos(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryVideosInput) (*sdkmcp.CallToolResult, types.VideoQueryResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryVideosInput) (*sdkmcp.CallToolResult, types.VideoQueryResponse, error) {
		if d.Config.AccessToken == "" {
			return nil, types.VideoQueryResponse{}, ErrInvalidInput("RESEARCH_ACCESS_TOKEN is not set on the server")
		}
		if input.StartDate == "" || input.EndDate == "" {
			return nil, types.VideoQueryResponse{}, ErrInvalidInput("start_date and end_date are required (YYYYMMDD)")
		}
		if input.JQ != "" {
			if err := d.Query.ValidateExpression(input.JQ); err != nil {
				return nil, types.VideoQueryResponse{}, ErrInvalidInput(err.Error())
			}
		}

		fields := input.Fields
		if len(fields) == 0 {
			fields = d.Config.DefaultFields
		}

		resp, err := d.Client.QueryVideos(ctx, d.Config.AccessToken, client.QueryRequest{
			Fields:     fields,
			Conditions: input.Query,
			StartDate:  input.StartDate,
			EndDate:    input.EndDate,
			MaxCount:   client.FromPtr(input.MaxCount),
			Cursor:     client.FromPtr(input.Cursor),
			SearchID:   client.FromPtr(input.SearchID),
			IsRandom:   client.FromPtr(input.IsRandom),
		})
		if err != nil {
			return nil, types.VideoQueryResponse{}, WrapResearchError(err)
		}

		output := types.VideoQueryResponse{
			Summary: summarize(resp),
		}

		if input.JQ == "" {
			output.Response = map[string]any(resp)
		} else {
			maxResults := input.MaxResults
			if maxResults <= 0 {
				maxResults = d.Config.JQMaxResults
			}
			result, err := d.Query.Project(resp, input.JQ, maxResults)
			if err != nil {
				return nil, types.VideoQueryResponse{}, ErrInvalidInput(err.Error())
			}
			output.Values = result.Values
			output.Errors = result.Errors
			output.Summary.Projected = true
			output.Summary.Truncated = result.Truncated
		}

		output.Hints = hintsFor(output.Summary, input)
		return nil, output, nil
	}
}

func summarize(resp client.QueryResponse) types.VideoQuerySummary {
	s := types.VideoQuerySummary{
		VideoCount: countVideos(resp),
		HasMore:    resp.HasMore(),
	}
	if cursor, ok := resp.NextCursor(); ok {
		s.Cursor = &cursor
	}
	if sid, ok := resp.SearchID(); ok {
		s.SearchID = sid
	}
	return s
}

func countVideos(resp client.QueryResponse) int {
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return 0
	}
	videos, _ := data["videos"].([]any)
	return len(videos)
}

func hintsFor(s types.VideoQuerySummary, input QueryVideosInput) []string {
	var hints []string
	if s.HasMore && s.Cursor != nil {
		if s.SearchID != "" {
			hints = append(hints, fmt.Sprintf("More results available: call again with cursor=%d and search_id=%q.", *s.Cursor, s.SearchID))
		} else {
			hints = append(hints, fmt.Sprintf("More results available: call again with cursor=%d.", *s.Cursor))
		}
	}
	if s.VideoCount == 0 && input.Cursor == nil {
		hints = append(hints, "No videos matched. Widen the date range or relax the conditions.")
	}
	if s.Truncated {
		hints = append(hints, "jq output truncated. Raise max_results or narrow the expression.")
	}
	return hints
}
