// Package prompts contains MCP prompt implementations for the Research API.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultFields []string
	VideoFields   []string
}
