package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/replay"
)

// SnapshotJSON is the board a viewer renders for one ply.
type SnapshotJSON struct {
	// Board holds 8 rows, row 0 being rank 8. Cells are nil for empty
	// squares or a code such as "wP".
	Board      [chess.BoardSize][chess.BoardSize]*string `json:"board"`
	Highlight  *HighlightJSON                            `json:"highlight"`
	FEN        string                                    `json:"fen"`
	ToMove     string                                    `json:"toMove"`
	ReachedPly int                                       `json:"reachedPly"`
	LastMove   string                                    `json:"lastMove,omitempty"`
	Check      string                                    `json:"check,omitempty"`
	Stalemate  bool                                      `json:"stalemate,omitempty"`
	Error      string                                    `json:"error,omitempty"`
}

// HighlightJSON marks the last move both as squares and as [row, col]
// grid coordinates.
type HighlightJSON struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromCoords [2]int `json:"fromCoords"`
	ToCoords   [2]int `json:"toCoords"`
}

// TagJSON is one header pair. Headers are emitted as a list to keep
// their order.
type TagJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MovePairJSON is one numbered row of a move list.
type MovePairJSON struct {
	MoveNumber int    `json:"moveNumber"`
	White      string `json:"white,omitempty"`
	Black      string `json:"black,omitempty"`
}

// GameJSON represents a game in JSON format.
type GameJSON struct {
	ID       string         `json:"id,omitempty"`
	Tags     []TagJSON      `json:"tags"`
	Moves    []MovePairJSON `json:"moves"`
	SAN      []string       `json:"san"`
	Result   string         `json:"result"`
	PlyCount int            `json:"plyCount"`
}

// SnapshotToJSON converts a replay snapshot to its JSON form.
func SnapshotToJSON(snap replay.Snapshot) SnapshotJSON {
	sj := SnapshotJSON{
		FEN:        engine.BoardToFEN(&snap.Board),
		ToMove:     colourName(snap.Board.ToMove),
		ReachedPly: snap.Ply,
		Stalemate:  engine.IsStalemate(&snap.Board),
	}

	grid := snap.Board.Grid()
	for r, row := range grid {
		for c, code := range row {
			if code != "" {
				sj.Board[r][c] = &code
			}
		}
	}

	if h := snap.Highlight; h != nil {
		sj.Highlight = &HighlightJSON{
			From:       h.From.String(),
			To:         h.To.String(),
			FromCoords: h.From.Coords(),
			ToCoords:   h.To.Coords(),
		}
	}
	if mv := snap.Move; mv != nil {
		sj.LastMove = mv.Text
		sj.Check = checkName(mv.CheckStatus)
	}
	if snap.Err != nil {
		sj.Error = snap.Err.Error()
	}
	return sj
}

// GameToJSON converts a game to JSON format with moves grouped into
// numbered pairs.
func GameToJSON(game *chess.Game) GameJSON {
	gj := GameJSON{
		Tags:     TagsToJSON(game.Tags),
		Moves:    MovePairs(game),
		SAN:      append([]string{}, game.Moves...),
		Result:   game.GameResult(),
		PlyCount: game.PlyCount(),
	}
	if gj.Result == "" {
		gj.Result = "*"
	}
	return gj
}

// TagsToJSON converts headers to their ordered JSON form.
func TagsToJSON(tags chess.Tags) []TagJSON {
	out := make([]TagJSON, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagJSON{Name: tag.Name, Value: tag.Value})
	}
	return out
}

// MovePairs groups the moves of game into numbered rows, White first,
// matching the replay from the initial position.
func MovePairs(game *chess.Game) []MovePairJSON {
	pairs := make([]MovePairJSON, 0, len(game.Moves)/2+1)
	for i, san := range game.Moves {
		if i%2 == 0 {
			pairs = append(pairs, MovePairJSON{MoveNumber: i/2 + 1, White: san})
			continue
		}
		pairs[len(pairs)-1].Black = san
	}
	return pairs
}

// encodeJSON writes v as indented JSON followed by a newline.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func colourName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

func checkName(s chess.CheckStatus) string {
	switch s {
	case chess.Check:
		return "check"
	case chess.Checkmate:
		return "checkmate"
	}
	return ""
}
