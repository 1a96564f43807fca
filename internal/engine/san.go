package engine

import (
	"strings"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// SAN is a decoded Standard Algebraic Notation move. It carries only what
// the text says; resolving the source square needs a board.
type SAN struct {
	// The move text as given.
	Text string

	// Piece kind being moved; King for castling.
	Piece chess.Piece

	// KingsideCastle, QueensideCastle, or NormalMove.
	Castle chess.MoveClass

	// Disambiguation hints, -1 when absent.
	FromFile int
	FromRank int

	// Destination square (NoSquare for castling).
	To chess.Square

	Capture   bool
	Promotion chess.Piece

	// Status claimed by a trailing "+" or "#".
	Check chess.CheckStatus

	// Whether an "e.p." marker was written.
	EnPassant bool
}

// isFile returns true if c is a valid file character.
func isFile(c byte) bool {
	return c >= chess.FileBase && c < chess.FileBase+chess.BoardSize
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.RankBase && c < chess.RankBase+chess.BoardSize
}

// isCapture returns true if c is a capture character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// sanPiece returns the piece named by an uppercase SAN letter.
func sanPiece(c byte) chess.Piece {
	if c < 'A' || c > 'Z' {
		return chess.Empty
	}
	return chess.PieceFromLetter(c)
}

// promotionPiece returns the piece named after "=", accepting either case.
func promotionPiece(c byte) chess.Piece {
	switch p := chess.PieceFromLetter(c); p {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return p
	}
	return chess.Empty
}

// DecodeSAN parses a SAN move string. Trailing "!"/"?" annotations and an
// "e.p." marker are tolerated, "0" may stand for "O" in castling and the
// "=" before a promotion piece is optional.
func DecodeSAN(text string) (SAN, error) {
	d := SAN{
		Text:     text,
		Castle:   chess.NormalMove,
		FromFile: -1,
		FromRank: -1,
		To:       chess.NoSquare,
	}
	malformed := func(detail string) (SAN, error) {
		return SAN{}, errors.NewMoveError(errors.MalformedMove, text, detail)
	}

	s := strings.TrimSpace(text)
	if len(s) > chess.MaxMoveLen {
		return malformed("too long")
	}

	s, d.Check = stripSuffixes(s)

	for _, marker := range []string{"e.p.", "ep"} {
		if strings.HasSuffix(s, marker) {
			d.EnPassant = true
			s = strings.TrimSpace(strings.TrimSuffix(s, marker))
			break
		}
	}

	if s == "" {
		return malformed("empty move")
	}

	switch strings.ReplaceAll(s, "0", "O") {
	case "O-O", "OO":
		d.Piece, d.Castle = chess.King, chess.KingsideCastle
		return d, nil
	case "O-O-O", "OOO":
		d.Piece, d.Castle = chess.King, chess.QueensideCastle
		return d, nil
	}

	// Promotion suffix, "=Q" or a bare piece letter after the rank.
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i != len(s)-2 {
			return malformed("bad promotion suffix")
		}
		if d.Promotion = promotionPiece(s[i+1]); d.Promotion == chess.Empty {
			return malformed("bad promotion piece")
		}
		s = s[:i]
	} else if n := len(s); n >= 3 && isRank(s[n-2]) && sanPiece(s[n-1]) != chess.Empty {
		if d.Promotion = promotionPiece(s[n-1]); d.Promotion == chess.Empty {
			return malformed("bad promotion piece")
		}
		s = s[:n-1]
	}

	// Destination square
	if len(s) < 2 || !isFile(s[len(s)-2]) || !isRank(s[len(s)-1]) {
		return malformed("missing destination square")
	}
	d.To = chess.NewSquare(int(s[len(s)-2]-chess.FileBase), int(s[len(s)-1]-chess.RankBase))
	s = s[:len(s)-2]

	if n := len(s); n > 0 && (isCapture(s[n-1]) || s[n-1] == '-') {
		d.Capture = s[n-1] != '-'
		s = s[:n-1]
	}

	d.Piece = chess.Pawn
	if len(s) > 0 {
		if p := sanPiece(s[0]); p != chess.Empty {
			d.Piece = p
			s = s[1:]
		}
	}

	// Disambiguation: file, rank, or both.
	if len(s) > 0 && isFile(s[0]) {
		d.FromFile = int(s[0] - chess.FileBase)
		s = s[1:]
	}
	if len(s) > 0 && isRank(s[0]) {
		d.FromRank = int(s[0] - chess.RankBase)
		s = s[1:]
	}
	if s != "" {
		return malformed("unexpected " + s)
	}

	if err := d.validate(); err != nil {
		return SAN{}, err
	}
	return d, nil
}

// stripSuffixes removes trailing annotations and check indicators, in
// either order, and returns the check status they claim.
func stripSuffixes(s string) (string, chess.CheckStatus) {
	status := chess.NoCheck
	for len(s) > 0 {
		switch s[len(s)-1] {
		case '!', '?':
		case '+':
			if status == chess.NoCheck {
				status = chess.Check
			}
		case '#':
			status = chess.Checkmate
		default:
			return s, status
		}
		s = s[:len(s)-1]
	}
	return s, status
}

// validate applies the piece-specific shape rules.
func (d *SAN) validate() error {
	malformed := func(detail string) error {
		return errors.NewMoveError(errors.MalformedMove, d.Text, detail)
	}

	if d.Piece != chess.Pawn {
		if d.Promotion != chess.Empty {
			return malformed("only pawns promote")
		}
		if d.EnPassant {
			return malformed("only pawns capture en passant")
		}
		return nil
	}

	if d.FromFile >= 0 && d.FromFile != d.To.File() {
		d.Capture = true
	}
	if d.Capture {
		if d.FromFile < 0 {
			return malformed("pawn capture without source file")
		}
		if abs(d.FromFile-d.To.File()) != 1 {
			return malformed("pawn captures onto an adjacent file")
		}
	}
	return nil
}

// matchesSource reports whether from agrees with the disambiguation
// hints. A pawn without a file hint must come from the destination file.
func (d SAN) matchesSource(from chess.Square) bool {
	file := d.FromFile
	if d.Piece == chess.Pawn && file < 0 {
		file = d.To.File()
	}
	if file >= 0 && from.File() != file {
		return false
	}
	if d.FromRank >= 0 && from.Rank() != d.FromRank {
		return false
	}
	return true
}

// EncodeSAN writes mv, a legal move on board, in SAN with minimal
// disambiguation and a check or mate suffix.
func EncodeSAN(board *chess.Board, mv chess.Move) string {
	var sb strings.Builder
	kind := chess.ExtractPiece(mv.PieceToMove)

	switch {
	case mv.Class == chess.KingsideCastle:
		sb.WriteString("O-O")
	case mv.Class == chess.QueensideCastle:
		sb.WriteString("O-O-O")
	case kind == chess.Pawn:
		if mv.From.File() != mv.To.File() {
			sb.WriteByte(byte(chess.FileBase + mv.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(mv.To.String())
		if mv.PromotedPiece != chess.Empty {
			sb.WriteByte('=')
			sb.WriteByte(chess.ExtractPiece(mv.PromotedPiece).Letter())
		}
	default:
		sb.WriteByte(kind.Letter())
		sb.WriteString(disambiguation(board, mv))
		if mv.CapturedPiece != chess.Empty {
			sb.WriteByte('x')
		}
		sb.WriteString(mv.To.String())
	}

	sb.WriteString(checkStatusAfter(board, mv).String())
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell mv
// apart from other legal moves of the same piece kind to the same square.
func disambiguation(board *chess.Board, mv chess.Move) string {
	var rivals []chess.Square
	for _, other := range legalMoves(board) {
		if other.To == mv.To && other.From != mv.From && other.PieceToMove == mv.PieceToMove {
			rivals = append(rivals, other.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		sameFile = sameFile || sq.File() == mv.From.File()
		sameRank = sameRank || sq.Rank() == mv.From.Rank()
	}
	switch {
	case !sameFile:
		return mv.From.String()[:1]
	case !sameRank:
		return mv.From.String()[1:]
	}
	return mv.From.String()
}
