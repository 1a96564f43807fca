package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/hashing"
	"github.com/lgbarn/pgnview-go/internal/worker"
)

// errTruncated is returned by check when any game has an illegal move.
var errTruncated = fmt.Errorf("%w: some games were truncated", errors.ErrIllegalMove)

// source locates a game within the checked files.
type source struct {
	file string
	num  int
}

func (s source) String() string {
	return fmt.Sprintf("%s game %d", s.file, s.num)
}

// checkJSON is one entry of check's JSON report.
type checkJSON struct {
	File        string `json:"file"`
	Game        int    `json:"game"`
	White       string `json:"white,omitempty"`
	Black       string `json:"black,omitempty"`
	Plies       int    `json:"plies"`
	Valid       int    `json:"validPlies"`
	Result      string `json:"result"`
	Error       string `json:"error,omitempty"`
	DuplicateOf string `json:"duplicateOf,omitempty"`
}

func newCheckCmd(c *cli) *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Verify that every move of every game is legal",
		Long: `Replay every game in the given PGN files in parallel and report the
first illegal move of each game that has one. Games reaching the same final
position in the same number of plies as an earlier game are reported as
duplicates. The exit status is non-zero when any game is truncated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				games   []*chess.Game
				sources []source
			)
			for _, path := range args {
				gs, err := c.readGames(cmd, path)
				if err != nil {
					return err
				}
				for i, g := range gs {
					games = append(games, g)
					sources = append(sources, source{file: path, num: i + 1})
				}
			}

			results := worker.ReplayAll(games, c.cfg.Workers)
			report := make([]checkJSON, len(results))
			det := hashing.NewDuplicateDetector(exact)
			truncated := 0

			for i, r := range results {
				src := sources[r.Index]
				entry := checkJSON{
					File:   src.file,
					Game:   src.num,
					White:  r.Game.White(),
					Black:  r.Game.Black(),
					Plies:  r.Game.PlyCount(),
					Valid:  r.Snapshot.Ply + 1,
					Result: r.Game.GameResult(),
				}

				if r.Err != nil {
					truncated++
					gerr := &errors.GameError{Err: r.Err, GameNum: src.num, File: src.file, Line: r.Game.StartLine}
					c.logger.Debug("truncated game", zap.Error(gerr))
					entry.Error = gerr.Error()
				} else if first, dup := det.CheckAndAdd(r.Index, r.Game, &r.Snapshot.Board); dup {
					entry.DuplicateOf = sources[first].String()
				}
				report[i] = entry
			}

			if c.cfg.Output.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				writeCheckText(cmd.OutOrStdout(), report, truncated, det.DuplicateCount())
			}

			if truncated > 0 {
				return errTruncated
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "only report duplicates whose move lists are identical")
	return cmd
}

func writeCheckText(w io.Writer, report []checkJSON, truncated, duplicates int) {
	for _, e := range report {
		switch {
		case e.Error != "":
			fmt.Fprintln(w, e.Error)
		case e.DuplicateOf != "":
			fmt.Fprintf(w, "%s game %d: duplicate of %s\n", e.File, e.Game, e.DuplicateOf)
		}
	}
	fmt.Fprintf(w, "%d games checked, %d with illegal moves, %d duplicates\n", len(report), truncated, duplicates)
}
