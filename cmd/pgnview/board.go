package main

import (
	"github.com/spf13/cobra"

	"github.com/lgbarn/pgnview-go/internal/replay"
)

func newBoardCmd(c *cli) *cobra.Command {
	var ply int

	cmd := &cobra.Command{
		Use:   "board FILE|-",
		Short: "Show the board of the first game in a file at a given ply",
		Long: `Replay the first game in a PGN file and print the board after the
given ply (0 is White's first move, -1 the starting position). Plies past
the end show the final position. An illegal move stops the replay and the
last legal position is shown together with the error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := c.readGame(cmd, args[0])
			if err != nil {
				return err
			}

			if ply == lastPly {
				ply = len(game.Moves) - 1
			}
			snap := replay.BoardAtPly(game, ply)
			return c.writer(cmd).WriteSnapshot(snap)
		},
	}
	cmd.Flags().IntVar(&ply, "ply", lastPly, "ply to show; defaults to the last move")
	return cmd
}

// lastPly is the --ply default meaning "after the last move".
const lastPly = 1 << 30
