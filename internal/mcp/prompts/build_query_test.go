package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleBuildVideoQuery(t *testing.T) {
	cfg := &Config{
		DefaultFields: []string{"id", "username"},
		VideoFields:   []string{"id", "username", "view_count"},
	}

	req := &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{
			Name: "build_video_query",
			Arguments: map[string]string{
				"topic":      "airfryer recipes",
				"start_date": "20240101",
			},
		},
	}

	result, err := HandleBuildVideoQuery(cfg)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	text, ok := result.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "**Goal**: airfryer recipes")
	assert.Contains(t, text.Text, "20240101 to (unset)")
	assert.Contains(t, text.Text, "`id,username`")
	assert.Contains(t, text.Text, "view_count")
}

func TestHandleBuildVideoQuery_NoArguments(t *testing.T) {
	result, err := HandleBuildVideoQuery(&Config{})(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
	require.NoError(t, err)

	text := result.Messages[0].Content.(*sdkmcp.TextContent).Text
	assert.NotContains(t, text, "**Goal**")
	assert.NotContains(t, text, "Requested window")
}
