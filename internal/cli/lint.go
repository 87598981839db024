package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/videoquery-mcp/internal/schema"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <conditions>",
		Short: "Check a condition tree for structural mistakes",
		Long: `Check a condition tree (file path, inline JSON, or - for stdin) against
the condition schema. The API is not called.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readConditions(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			validator, err := schema.NewConditionValidator()
			if err != nil {
				return err
			}

			result := validator.Validate(data)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			for _, msg := range result.Errors {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return fmt.Errorf("conditions are invalid (%d problems)", len(result.Errors))
		},
	}
}
