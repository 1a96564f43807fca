package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/pgnview-go/internal/replay"
	"github.com/lgbarn/pgnview-go/internal/testutil"
)

func TestSnapshotToJSON_ImmortalGame(t *testing.T) {
	game := testutil.MustParseGame(t, testutil.ImmortalGamePGN)
	sj := SnapshotToJSON(replay.BoardAtPly(game, 44))

	cell := func(row, col int) string {
		if p := sj.Board[row][col]; p != nil {
			return *p
		}
		return ""
	}
	testutil.AssertEqual(t, cell(0, 3), "bK")
	testutil.AssertEqual(t, cell(1, 4), "wB")
	testutil.AssertEqual(t, cell(7, 0), "bQ")
	testutil.AssertEqual(t, cell(4, 4), "")

	testutil.AssertEqual(t, sj.Highlight, &HighlightJSON{
		From: "d6", To: "e7",
		FromCoords: [2]int{2, 3}, ToCoords: [2]int{1, 4},
	})
	testutil.AssertEqual(t, sj.FEN, testutil.ImmortalGameFinalFEN)
	testutil.AssertEqual(t, sj.ReachedPly, 44)
	testutil.AssertEqual(t, sj.ToMove, "black")
	testutil.AssertEqual(t, sj.LastMove, "Be7#")
	testutil.AssertEqual(t, sj.Check, "checkmate")
	testutil.AssertEqual(t, sj.Stalemate, false)
	testutil.AssertEqual(t, sj.Error, "")
}

func TestSnapshotToJSON_Stalemate(t *testing.T) {
	game := testutil.GameFromMoves(
		"e3", "a5", "Qh5", "Ra6", "Qxa5", "h5", "h4", "Rah6", "Qxc7", "f6",
		"Qxd7+", "Kf7", "Qxb7", "Qd3", "Qxb8", "Qh7", "Qxc8", "Kg6", "Qe6",
	)

	final := SnapshotToJSON(replay.BoardAtPly(game, 18))
	testutil.AssertEqual(t, final.Error, "")
	testutil.AssertEqual(t, final.LastMove, "Qe6")
	testutil.AssertEqual(t, final.Check, "")
	testutil.AssertEqual(t, final.Stalemate, true)

	before := SnapshotToJSON(replay.BoardAtPly(game, 17))
	testutil.AssertEqual(t, before.Stalemate, false)

	data, err := json.Marshal(before)
	testutil.AssertNoError(t, err)
	if bytes.Contains(data, []byte("stalemate")) {
		t.Errorf("stalemate should be omitted when false: %s", data)
	}
}

func TestSnapshotToJSON_Encoding(t *testing.T) {
	game := testutil.GameFromMoves("e4", "e5", "Ke3")
	data, err := json.Marshal(SnapshotToJSON(replay.BoardAtPly(game, -1)))
	testutil.AssertNoError(t, err)

	var decoded struct {
		Board     [][]*string `json:"board"`
		Highlight *struct{}   `json:"highlight"`
	}
	testutil.AssertNoError(t, json.Unmarshal(data, &decoded))
	if len(decoded.Board) != 8 || decoded.Board[4][4] != nil || *decoded.Board[7][4] != "wK" {
		t.Errorf("board = %s", data)
	}
	if decoded.Highlight != nil || !bytes.Contains(data, []byte(`"highlight":null`)) {
		t.Errorf("highlight should be null at the start: %s", data)
	}

	truncated := SnapshotToJSON(replay.BoardAtPly(game, 2))
	testutil.AssertEqual(t, truncated.ReachedPly, 1)
	if !strings.Contains(truncated.Error, `"Ke3"`) {
		t.Errorf("Error = %q, want the failing move", truncated.Error)
	}
}

func TestGameToJSON(t *testing.T) {
	tests := []struct {
		name      string
		pgn       string
		wantPairs []MovePairJSON
		wantRes   string
	}{
		{
			name: "white starts",
			pgn:  "[White \"A\"]\n[Black \"B\"]\n\n1. e4 e5 2. Nf3 1-0",
			wantPairs: []MovePairJSON{
				{MoveNumber: 1, White: "e4", Black: "e5"},
				{MoveNumber: 2, White: "Nf3"},
			},
			wantRes: "1-0",
		},
		{
			name: "set up tags do not change numbering",
			pgn: "[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/4P3/4K3 b - - 0 30\"]\n\n" +
				"1. d4 d5 2. c4",
			wantPairs: []MovePairJSON{
				{MoveNumber: 1, White: "d4", Black: "d5"},
				{MoveNumber: 2, White: "c4"},
			},
			wantRes: "*",
		},
		{
			name:      "result from header only",
			pgn:       "[Result \"1/2-1/2\"]\n",
			wantPairs: []MovePairJSON{},
			wantRes:   "1/2-1/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gj := GameToJSON(testutil.MustParseGame(t, tt.pgn))
			if diff := cmp.Diff(tt.wantPairs, gj.Moves); diff != "" {
				t.Errorf("moves mismatch (-want +got):\n%s", diff)
			}
			testutil.AssertEqual(t, gj.Result, tt.wantRes)
		})
	}

	gj := GameToJSON(testutil.MustParseGame(t, testutil.ImmortalGamePGN))
	testutil.AssertEqual(t, gj.PlyCount, 45)
	testutil.AssertEqual(t, len(gj.Moves), 23)
	testutil.AssertEqual(t, gj.Tags[4], TagJSON{Name: "White", Value: "Adolf Anderssen"})
	testutil.AssertEqual(t, gj.Moves[22], MovePairJSON{MoveNumber: 23, White: "Be7#"})
}

func TestTextWriter_WriteGame(t *testing.T) {
	game := testutil.MustParseGame(t, `[Event "The \"Match\""]
[White "Fischer"]
[Black "Spassky"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0`)

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewTextWriter(&buf, 20).WriteGame(game))

	want := `[Event "The \"Match\""]
[White "Fischer"]
[Black "Spassky"]

1. e4 e5 2. Nf3 Nc6
3. Bb5 a6 1-0
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteBoardText(t *testing.T) {
	var buf bytes.Buffer
	snap := replay.BoardAtPly(testutil.GameFromMoves("e4"), 0)
	testutil.AssertNoError(t, WriteBoardText(&buf, snap))

	lines := strings.Split(buf.String(), "\n")
	want := map[int]string{
		0:  "8  r  n  b  q  k  b  n  r",
		4:  "4  .  .  .  . [P] .  .  .",
		6:  "2  P  P  P  P [.] P  P  P",
		8:  "   a  b  c  d  e  f  g  h",
		10: "FEN: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		11: "Ply 0: e4 (e2-e4)",
	}
	for i, line := range want {
		if i >= len(lines) {
			t.Errorf("missing line %d, want %q", i, line)
		} else if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	game := testutil.GameFromMoves("d4")

	testutil.AssertNoError(t, NewWriter(&buf, true).WriteGame(game))
	var gj GameJSON
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &gj))
	testutil.AssertEqual(t, gj.SAN, []string{"d4"})

	buf.Reset()
	testutil.AssertNoError(t, NewWriter(&buf, false).WriteSnapshot(replay.BoardAtPly(game, 0)))
	if !strings.HasPrefix(buf.String(), "8  r") {
		t.Errorf("text snapshot = %q", buf.String())
	}
}
