package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/usestring/videoquery-mcp/internal/query"
	"github.com/usestring/videoquery-mcp/pkg/client"
)

type queryOptions struct {
	fields     []string
	conditions string
	start      string
	end        string
	maxCount   int
	cursor     int64
	searchID   string
	random     bool
	jq         string
	token      string
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one video query and print the response",
		Long: `Run one video query against the Research API and print the JSON response.

Only the flags you pass are sent: --cursor 0 and --random=false are sent
as given, while leaving them out omits the keys entirely.

Examples:
  videoquery query --conditions '{"and":[{"operation":"EQ","field_name":"region_code","field_values":["US"]}]}' \
      --start 20240101 --end 20240130 --fields id,username --max-count 100
  videoquery query --conditions query.json --start 20240101 --end 20240130 \
      --cursor 100 --search-id 7201388525814961198`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(cmd.Flags(), opts, a.cfg.DefaultFields, cmd.InOrStdin())
			if err != nil {
				return err
			}

			token := opts.token
			if token == "" {
				token = a.cfg.AccessToken
			}

			var engine *query.Engine
			if opts.jq != "" {
				engine = query.NewEngine()
				if err := engine.ValidateExpression(opts.jq); err != nil {
					return err
				}
			}

			resp, err := a.client().QueryVideos(cmd.Context(), token, req)
			if err != nil {
				return err
			}

			if engine == nil {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			result, err := engine.Project(resp, opts.jq, a.cfg.JQMaxResults)
			if err != nil {
				return err
			}
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "jq: %s\n", msg)
			}
			for _, v := range result.Values {
				if err := writeJSONLine(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}
			if result.Truncated {
				fmt.Fprintf(cmd.ErrOrStderr(), "jq: output truncated at %d of %d values\n", len(result.Values), result.RawCount)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.fields, "fields", nil, "Comma-separated video fields (default: DEFAULT_FIELDS)")
	f.StringVar(&opts.conditions, "conditions", "", "Condition tree: a file path, inline JSON, or - for stdin")
	f.StringVar(&opts.start, "start", "", "Start date, YYYYMMDD (UTC)")
	f.StringVar(&opts.end, "end", "", "End date, YYYYMMDD (UTC)")
	f.IntVar(&opts.maxCount, "max-count", client.DefaultMaxCount, "Maximum number of videos to return")
	f.Int64Var(&opts.cursor, "cursor", 0, "Pagination cursor from a previous response")
	f.StringVar(&opts.searchID, "search-id", "", "Search ID from a previous response")
	f.BoolVar(&opts.random, "random", false, "Request a random sample")
	f.StringVar(&opts.jq, "jq", "", "jq expression applied to the response before printing")
	f.StringVar(&opts.token, "token", "", "Bearer token (default: RESEARCH_ACCESS_TOKEN)")
	_ = cmd.MarkFlagRequired("conditions")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// buildRequest maps flags to a QueryRequest. Optional fields are set only
// for flags given on the command line, whatever their value.
func buildRequest(flags *pflag.FlagSet, opts *queryOptions, defaultFields []string, stdin io.Reader) (client.QueryRequest, error) {
	conditions, err := readConditions(opts.conditions, stdin)
	if err != nil {
		return client.QueryRequest{}, err
	}

	fields := opts.fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	req := client.QueryRequest{
		Fields:     fields,
		Conditions: conditions,
		StartDate:  opts.start,
		EndDate:    opts.end,
	}
	if flags.Changed("max-count") {
		req.MaxCount = client.Some(opts.maxCount)
	}
	if flags.Changed("cursor") {
		req.Cursor = client.Some(opts.cursor)
	}
	if flags.Changed("search-id") {
		req.SearchID = client.Some(opts.searchID)
	}
	if flags.Changed("random") {
		req.IsRandom = client.Some(opts.random)
	}
	return req, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
