// Package types provides shared types for videoquery-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

// ValidationResult contains the result of validating a single value.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
