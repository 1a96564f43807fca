package output

import (
	"io"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/replay"
)

// Writer renders games and snapshots in one format.
type Writer interface {
	// WriteGame writes the headers and mainline of a game.
	WriteGame(game *chess.Game) error

	// WriteSnapshot writes one board snapshot.
	WriteSnapshot(snap replay.Snapshot) error
}

// NewWriter returns a JSON writer when asJSON is set, else a text writer.
func NewWriter(w io.Writer, asJSON bool) Writer {
	if asJSON {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, DefaultLineLength)
}

// TextWriter writes PGN-style text and ASCII diagrams.
type TextWriter struct {
	w          io.Writer
	lineLength int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, lineLength int) *TextWriter {
	return &TextWriter{w: w, lineLength: lineLength}
}

// WriteGame writes a game as headers and numbered movetext.
func (tw *TextWriter) WriteGame(game *chess.Game) error {
	return WriteGameText(tw.w, game, tw.lineLength)
}

// WriteSnapshot writes a board diagram.
func (tw *TextWriter) WriteSnapshot(snap replay.Snapshot) error {
	return WriteBoardText(tw.w, snap)
}

// JSONWriter writes each value as an indented JSON document.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteGame writes a game in JSON format.
func (jw *JSONWriter) WriteGame(game *chess.Game) error {
	return encodeJSON(jw.w, GameToJSON(game))
}

// WriteSnapshot writes a snapshot in JSON format.
func (jw *JSONWriter) WriteSnapshot(snap replay.Snapshot) error {
	return encodeJSON(jw.w, SnapshotToJSON(snap))
}
