// Package cli implements the videoquery command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/usestring/videoquery-mcp/internal/config"
	"github.com/usestring/videoquery-mcp/internal/logging"
	"github.com/usestring/videoquery-mcp/pkg/client"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	logLevel string
	cleanup  func() error
}

func (a *app) client() *client.Client {
	return client.New(
		client.WithEndpoint(a.cfg.ResearchAPIURL),
		client.WithHTTPClient(&http.Client{Timeout: a.cfg.HTTPClientTimeout}),
	)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "videoquery",
		Short: "Query the TikTok Research API for videos",
		Long: `videoquery sends one query to the TikTok Research API video endpoint
and prints the JSON response.

Examples:
  videoquery query --conditions query.json --start 20240101 --end 20240130
  videoquery query --conditions - --start 20240101 --end 20240130 --jq '.data.videos[].id' < query.json
  videoquery lint query.json
  videoquery schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			logCfg := logging.FromConfig(a.cfg)
			if a.logLevel != "" {
				logCfg.Level = a.logLevel
			}
			cleanup, err := logging.Setup(logCfg)
			if err != nil {
				return fmt.Errorf("setting up logging: %w", err)
			}
			a.cleanup = cleanup
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	root.AddCommand(newQueryCmd(a), newLintCmd(a), newSchemaCmd())
	return root
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	var statusErr *client.HTTPStatusError
	if errors.As(err, &statusErr) {
		fmt.Fprintf(w, "Error: research API returned status %d\n", statusErr.StatusCode)
		if len(statusErr.Body) > 0 {
			fmt.Fprintf(w, "%s\n", statusErr.Body)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
