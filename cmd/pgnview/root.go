package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/output"
	"github.com/lgbarn/pgnview-go/internal/parser"
)

const programVersion = "0.1.0"

// cli holds the state shared by all subcommands.
type cli struct {
	cfg    *config.Config
	envErr error
	logger *zap.Logger
}

func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	c := &cli{cfg: config.NewConfig(), logger: zap.NewNop()}
	c.envErr = c.cfg.LoadEnv(lookup)

	root := &cobra.Command{
		Use:   "pgnview",
		Short: "Replay PGN chess games into verified board positions",
		Long: `pgnview parses PGN game records, validates every move against the
rules of chess and reconstructs the board at any ply.

Settings may also be given as PGNVIEW_* environment variables, e.g.
PGNVIEW_DATA_DIR or PGNVIEW_LOG_LEVEL; flags take precedence.

Examples:
  # Show the headers and moves of a game
  pgnview parse game.pgn

  # Show the board after White's 10th move
  pgnview board game.pgn --ply 18

  # Check every game in a collection
  pgnview check games/*.pgn

  # Serve the game library API
  pgnview serve --data-dir ./games --compress`,
		Version:       programVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.envErr != nil {
				return c.envErr
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			logger, err := c.cfg.Log.NewLogger()
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfg.Log.Level, "log-level", c.cfg.Log.Level, "log level (debug, info, warn, error)")
	flags.StringVar(&c.cfg.Log.Format, "log-format", c.cfg.Log.Format, "log format (console, json)")
	flags.BoolVar(&c.cfg.Output.JSON, "json", c.cfg.Output.JSON, "write JSON instead of text")

	root.AddCommand(
		newParseCmd(c),
		newBoardCmd(c),
		newCheckCmd(c),
		newServeCmd(c),
	)
	return root
}

// openInput opens path for reading; "-" is the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// readGames parses every game in path.
func (c *cli) readGames(cmd *cobra.Command, path string) ([]*chess.Game, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	name := path
	if path == "-" {
		name = "stdin"
	}
	p := parser.NewParser(r, parser.WithSourceName(name), parser.WithLogger(c.logger))
	return p.ParseAllGames()
}

// readGame parses the first game in path.
func (c *cli) readGame(cmd *cobra.Command, path string) (*chess.Game, error) {
	games, err := c.readGames(cmd, path)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrEmptyGame)
	}
	return games[0], nil
}

// writer returns the output writer selected by --json.
func (c *cli) writer(cmd *cobra.Command) output.Writer {
	if c.cfg.Output.JSON {
		return output.NewJSONWriter(cmd.OutOrStdout())
	}
	return output.NewTextWriter(cmd.OutOrStdout(), c.cfg.Output.MaxLineLength)
}
