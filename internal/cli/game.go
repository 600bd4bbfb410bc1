package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameRevealCmd())
	cmd.AddCommand(newGameActionCmd("end-turn", "End the current team's turn", "/api/v1/game/end-turn"))
	cmd.AddCommand(newGameActionCmd("reset-guesses", "Give up the remaining guesses", "/api/v1/game/reset-guesses"))
	cmd.AddCommand(newGameActionCmd("retry-clue", "Request the clue again after a failure", "/api/v1/game/clue/retry"))
	cmd.AddCommand(newGameExportCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Deal a new board and start a game",
		Long: `Deal a new board and start a game. A running game is replaced.

The first clue is requested in the background; use "game show" or the event
stream to see it arrive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post("/api/v1/game", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"get"},
		Short:   "Show the current game",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <word>",
		Short: "Reveal a word on the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Multi-word cards may be passed unquoted
			word := model.NormalizeWord(strings.Join(args, " "))
			if word == "" {
				return fmt.Errorf("word must not be empty")
			}

			req := map[string]string{"word": word}
			var result response.RevealResponse

			if err := client.Post("/api/v1/game/reveal", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// newGameActionCmd builds a command that posts to an action endpoint and
// prints the resulting game
func newGameActionCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameExportCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the exported board state",
		Long: `Print the board as exported for spymaster scripts: the team to play,
the words of each team, the assassin and the words revealed so far.

With --id, the last state saved for that game is fetched instead of the
live one. The export is always printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/game/export"
			if gameID != "" {
				path = "/api/v1/exports/" + gameID
			}

			var result model.StateExport
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput("json", cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "id", "", "Fetch the saved export of this game")

	return cmd
}
