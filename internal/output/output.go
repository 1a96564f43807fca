// Package output renders games and board snapshots as text or JSON.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/replay"
)

// DefaultLineLength is the movetext width used by text output.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteGameText writes the headers of game followed by its numbered
// mainline, wrapped at lineLength.
func WriteGameText(w io.Writer, game *chess.Game, lineLength int) error {
	ew := &errWriter{w: w}
	for _, tag := range game.Tags {
		fmt.Fprintf(ew, "[%s \"%s\"]\n", tag.Name, escapeTagValue(tag.Value))
	}
	if len(game.Tags) > 0 {
		fmt.Fprintln(ew)
	}

	ow := NewOutputWriter(ew, lineLength)
	for _, pair := range MovePairs(game) {
		num := strconv.Itoa(pair.MoveNumber)
		if pair.White != "" {
			ow.Write(num + ".")
			ow.Write(pair.White)
		} else {
			ow.Write(num + "...")
		}
		if pair.Black != "" {
			ow.Write(pair.Black)
		}
	}
	result := game.GameResult()
	if result == "" {
		result = "*"
	}
	ow.Write(result)
	ow.NewLine()
	return ew.err
}

// escapeTagValue escapes backslashes and quotes in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// WriteBoardText draws snap as an ASCII diagram, rank 8 at the top.
// The squares of the last move are bracketed.
func WriteBoardText(w io.Writer, snap replay.Snapshot) error {
	ew := &errWriter{w: w}
	marked := func(sq chess.Square) bool {
		h := snap.Highlight
		return h != nil && (h.From == sq || h.To == sq)
	}

	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteByte(' ')
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.NewSquare(file, rank)
			cell := byte('.')
			if p := snap.Board.Get(sq); p != chess.Empty {
				cell = chess.FENLetter(p)
			}
			if marked(sq) {
				sb.WriteString("[" + string(cell) + "]")
			} else {
				sb.WriteString(" " + string(cell) + " ")
			}
		}
		fmt.Fprintln(ew, strings.TrimRight(sb.String(), " "))
	}
	fmt.Fprintln(ew, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(ew)

	fmt.Fprintf(ew, "FEN: %s\n", engine.BoardToFEN(&snap.Board))
	if mv := snap.Move; mv != nil {
		fmt.Fprintf(ew, "Ply %d: %s (%s-%s)", snap.Ply, mv.Text, mv.From, mv.To)
		if name := checkName(mv.CheckStatus); name != "" {
			fmt.Fprintf(ew, " %s", name)
		}
		fmt.Fprintln(ew)
	}
	if snap.Err != nil {
		fmt.Fprintf(ew, "Stopped: %v\n", snap.Err)
	}
	return ew.err
}

// errWriter remembers the first write error so that formatting code can
// check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
