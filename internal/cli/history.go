package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/codenames/internal/api/response"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently completed games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive")
			}

			var result response.History
			if err := client.Get(fmt.Sprintf("/api/v1/history?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of games to list")

	return cmd
}
