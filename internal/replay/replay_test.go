package replay_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	nchess "github.com/notnil/chess"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/replay"
	"github.com/lgbarn/pgnview-go/internal/testutil"
)

func highlight(from, to string) *replay.Highlight {
	return &replay.Highlight{From: chess.MustParseSquare(from), To: chess.MustParseSquare(to)}
}

func TestBoardAtPly_ImmortalGame(t *testing.T) {
	t.Parallel()
	game := testutil.MustParseGame(t, testutil.ImmortalGamePGN)

	testutil.AssertEqual(t, game.White(), "Adolf Anderssen")
	testutil.AssertEqual(t, game.Black(), "Lionel Kieseritzky")
	testutil.AssertEqual(t, game.GetTag(chess.ResultTag), "1-0")
	testutil.AssertEqual(t, len(game.Moves), 45)

	snap := replay.BoardAtPly(game, 44)
	testutil.AssertNoError(t, snap.Err)
	testutil.AssertEqual(t, snap.Ply, 44)
	testutil.AssertFEN(t, snap.Board, testutil.ImmortalGameFinalFEN)
	testutil.AssertEqual(t, snap.Highlight, highlight("d6", "e7"))
	testutil.AssertEqual(t, snap.Board.Get(chess.MustParseSquare("d8")), chess.B(chess.King))
	testutil.AssertEqual(t, snap.Board.Get(chess.MustParseSquare("e7")), chess.W(chess.Bishop))

	if snap.Move == nil || snap.Move.CheckStatus != chess.Checkmate {
		t.Errorf("last move = %+v, want computed checkmate", snap.Move)
	}
	if !engine.IsCheckmate(&snap.Board) {
		t.Error("final position is not checkmate")
	}

	// Plies past the end clamp to the final position.
	testutil.AssertEqual(t, replay.BoardAtPly(game, 1000).Board, snap.Board)
}

func TestBoardAtPly_Start(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		game    *chess.Game
		wantFEN string
	}{
		{"standard", testutil.GameFromMoves("e4", "e5"), engine.InitialFEN},
		{"no moves", testutil.GameFromMoves(), engine.InitialFEN},
		{
			name: "set up tags ignored",
			game: func() *chess.Game {
				g := testutil.GameFromMoves("e4")
				g.SetTag(chess.SetUpTag, "1")
				g.SetTag(chess.FENTag, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
				return g
			}(),
			wantFEN: engine.InitialFEN,
		},
		{
			name: "invalid set up position",
			game: func() *chess.Game {
				g := testutil.GameFromMoves("e4")
				g.SetTag(chess.SetUpTag, "1")
				g.SetTag(chess.FENTag, "not a fen")
				return g
			}(),
			wantFEN: engine.InitialFEN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, ply := range []int{-1, -50} {
				snap := replay.BoardAtPly(tt.game, ply)
				testutil.AssertFEN(t, snap.Board, tt.wantFEN)
				testutil.AssertEqual(t, snap.Ply, -1)
				if snap.Highlight != nil || snap.Move != nil || snap.Err != nil {
					t.Errorf("BoardAtPly(%d) = %+v, want a bare start position", ply, snap)
				}
			}
		})
	}
}

func TestBoardAtPly_SetUpGameReplaysFromInitialPosition(t *testing.T) {
	t.Parallel()
	game := testutil.MustParseGame(t, `[White "A"]
[Black "B"]
[SetUp "1"]
[FEN "4k3/8/8/8/8/8/8/4K3 w - - 0 1"]

1. e4 e5 *`)

	snap := replay.BoardAtPly(game, 1)
	testutil.AssertNoError(t, snap.Err)
	testutil.AssertFEN(t, snap.Board, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	testutil.AssertEqual(t, snap.Highlight, highlight("e7", "e5"))

	tl := replay.NewTimeline(game)
	testutil.AssertEqual(t, tl.At(-1).Board, chess.InitialBoard())
	testutil.AssertEqual(t, tl.At(1).Board, snap.Board)
}

func TestBoardAtPly_Truncation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		moves         []string
		ply           int
		wantPly       int
		wantHighlight *replay.Highlight
		wantKind      errors.MoveErrorKind
		wantErrPly    int
	}{
		{
			name:          "illegal king move",
			moves:         []string{"e4", "e5", "Ke3", "Nf6"},
			ply:           3,
			wantPly:       1,
			wantHighlight: highlight("e7", "e5"),
			wantKind:      errors.NoLegalSource,
			wantErrPly:    2,
		},
		{
			name:       "first move illegal",
			moves:      []string{"e5", "e4"},
			ply:        1,
			wantPly:    -1,
			wantKind:   errors.NoLegalSource,
			wantErrPly: 0,
		},
		{
			name:          "castling after king move",
			moves:         []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "Ke2", "Nf6", "Ke1", "d6", "O-O"},
			ply:           10,
			wantPly:       9,
			wantHighlight: highlight("d7", "d6"),
			wantKind:      errors.CastlingBlocked,
			wantErrPly:    10,
		},
		{
			name:          "malformed token",
			moves:         []string{"d4", "--", "c4"},
			ply:           2,
			wantPly:       0,
			wantHighlight: highlight("d2", "d4"),
			wantKind:      errors.MalformedMove,
			wantErrPly:    1,
		},
		{
			name:          "ambiguous knight",
			moves:         []string{"Nf3", "a6", "Nc3", "a5", "Nd4", "a4", "Nb5"},
			ply:           6,
			wantPly:       5,
			wantHighlight: highlight("a5", "a4"),
			wantKind:      errors.AmbiguousMove,
			wantErrPly:    6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			game := testutil.GameFromMoves(tt.moves...)
			snap := replay.BoardAtPly(game, tt.ply)

			testutil.AssertEqual(t, snap.Ply, tt.wantPly)
			testutil.AssertEqual(t, snap.Highlight, tt.wantHighlight)
			testutil.AssertMoveKind(t, snap.Err, tt.wantKind)
			testutil.AssertErrorIs(t, snap.Err, errors.ErrIllegalMove)

			var me *errors.MoveError
			if errors.As(snap.Err, &me) && me.Ply != tt.wantErrPly {
				t.Errorf("error ply = %d, want %d", me.Ply, tt.wantErrPly)
			}

			// The board is the last one reached before the failing move.
			testutil.AssertEqual(t, snap.Board, replay.BoardAtPly(game, tt.wantPly).Board)
			if !snap.Truncated() {
				t.Error("Truncated() = false")
			}

			// Requests before the failing move are unaffected.
			if before := replay.BoardAtPly(game, tt.wantErrPly-1); before.Err != nil {
				t.Errorf("BoardAtPly(%d).Err = %v", tt.wantErrPly-1, before.Err)
			}
		})
	}
}

func TestBoardAtPly_Monotonic(t *testing.T) {
	t.Parallel()
	game := testutil.MustParseGame(t, testutil.ImmortalGamePGN)

	prev := replay.BoardAtPly(game, -1)
	for k := 0; k < len(game.Moves); k++ {
		want, mv, err := engine.Apply(prev.Board, game.Moves[k])
		testutil.AssertNoError(t, err, "ply %d", k)

		got := replay.BoardAtPly(game, k)
		testutil.AssertEqual(t, got.Board, want, "ply %d", k)
		testutil.AssertEqual(t, got.Highlight, &replay.Highlight{From: mv.From, To: mv.To}, "ply %d", k)
		prev = got
	}
}

func TestBoardAtPly_Deterministic(t *testing.T) {
	t.Parallel()
	game := testutil.MustParseGame(t, testutil.ImmortalGamePGN)

	for _, ply := range []int{-1, 0, 7, 22, 44} {
		a := replay.BoardAtPly(game, ply)
		b := replay.BoardAtPly(game, ply)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("BoardAtPly(%d) differs between calls (-first +second):\n%s", ply, diff)
		}
	}
}

func TestBoardAtPly_MatchesOracle(t *testing.T) {
	t.Parallel()
	game := testutil.MustParseGame(t, testutil.ImmortalGamePGN)

	opt, err := nchess.PGN(strings.NewReader(testutil.ImmortalGamePGN))
	if err != nil {
		t.Fatalf("oracle rejected game: %v", err)
	}
	positions := nchess.NewGame(opt).Positions()
	if len(positions) != len(game.Moves)+1 {
		t.Fatalf("oracle has %d positions, want %d", len(positions), len(game.Moves)+1)
	}

	for i, pos := range positions {
		snap := replay.BoardAtPly(game, i-1)
		want := strings.Fields(pos.String())[0]
		if got := engine.PlacementFEN(&snap.Board); got != want {
			t.Errorf("ply %d placement = %s, oracle %s", i-1, got, want)
		}
	}
}
