package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Number guessing game commands",
	}

	cmd.AddCommand(newGameRoundCmd())
	cmd.AddCommand(newGameGuessCmd())

	return cmd
}

func newGameRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round",
		Short: "Start a fresh round",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			if err := client.Post("/api/v1/game/round", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <number>",
		Short: "Guess the number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"guess": args[0]}
			var result GuessResult

			if err := client.Post("/api/v1/game/guess", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
