package main

import "github.com/spf13/cobra"

func newParseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Show the headers and mainline of every game in a file",
		Long: `Parse a PGN file and print the headers and mainline moves of each game.
Comments, variations and annotation glyphs are dropped. Moves are not
checked; use "pgnview check" for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := c.readGames(cmd, args[0])
			if err != nil {
				return err
			}

			w := c.writer(cmd)
			for _, g := range games {
				if err := w.WriteGame(g); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
