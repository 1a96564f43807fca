// Package testutil provides shared test utilities for the pgnview-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/parser"
)

// ImmortalGamePGN is Anderssen v Kieseritzky, London 1851.
const ImmortalGamePGN = `[Event "Immortal Game"]
[Site "London"]
[Date "1851.06.21"]
[Round "?"]
[White "Adolf Anderssen"]
[Black "Lionel Kieseritzky"]
[Result "1-0"]
[ECO "C33"]
[PlyCount "45"]

1. e4 e5 2. f4 exf4 3. Bc4 Qh4+ 4. Kf1 b5 5. Bxb5 Nf6 6. Nf3 Qh6 7. d3 Nh5
8. Nh4 Qg5 9. Nf5 c6 10. g4 Nf6 11. Rg1 cxb5 12. h4 Qg6 13. h5 Qg5 14. Qf3 Ng8
15. Bxf4 Qf6 16. Nc3 Bc5 17. Nd5 Qxb2 18. Bd6 Bxg1 19. e5 Qxa1+ 20. Ke2 Na6
21. Nxg7+ Kd8 22. Qf6+ Nxf6 23. Be7# 1-0
`

// ImmortalGameFinalFEN is the position after 23. Be7#.
const ImmortalGameFinalFEN = "r1bk3r/p2pBpNp/n4n2/1p1NP2P/6P1/3P4/P1P1K3/q5b1 b - - 1 23"

// ParseTestGame parses a PGN string and returns the first game, or nil if
// parsing fails or no games are found. Use this for tests where parse failure
// is an acceptable outcome.
func ParseTestGame(pgn string) *chess.Game {
	if games := ParseTestGames(pgn); len(games) > 0 {
		return games[0]
	}
	return nil
}

// ParseTestGames parses a PGN string and returns all games found.
// Returns nil if parsing fails or no games are found.
func ParseTestGames(pgn string) []*chess.Game {
	games, err := parser.NewParser(strings.NewReader(pgn)).ParseAllGames()
	if err != nil || len(games) == 0 {
		return nil
	}
	return games
}

// MustParseGame parses a PGN string and returns the first game.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGame(t testing.TB, pgn string) *chess.Game {
	t.Helper()
	game, err := parser.Parse(pgn)
	if err != nil {
		t.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}
	return game
}

// MustParseGames parses a PGN string and returns all games found.
// It calls t.Fatal if parsing fails or no games are found.
func MustParseGames(t testing.TB, pgn string) []*chess.Game {
	t.Helper()
	games := ParseTestGames(pgn)
	if len(games) == 0 {
		t.Fatalf("failed to parse any games from PGN:\n%s", pgn)
	}
	return games
}

// GameFromMoves builds a standard-start game from SAN tokens.
func GameFromMoves(moves ...string) *chess.Game {
	g := chess.NewGame()
	g.SetTag(chess.WhiteTag, "White")
	g.SetTag(chess.BlackTag, "Black")
	g.Moves = append(g.Moves, moves...)
	return g
}
