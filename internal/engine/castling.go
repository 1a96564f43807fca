package engine

import (
	"fmt"

	"github.com/lgbarn/pgnview-go/internal/chess"
)

// castleSide describes the squares involved in one castling move.
type castleSide struct {
	class    chess.MoveClass
	right    chess.CastlingRights
	kingFrom chess.Square
	kingTo   chess.Square
	rookFrom chess.Square
	rookTo   chess.Square
	// Squares between king and rook that must be empty.
	between []chess.Square
	// Squares the king passes through or lands on.
	transit []chess.Square
}

func castleSquares(colour chess.Colour, kingside bool) castleSide {
	rank := homeRank(colour)
	sq := func(file int) chess.Square { return chess.NewSquare(file, rank) }

	if kingside {
		return castleSide{
			class:    chess.KingsideCastle,
			right:    chess.KingsideRight(colour),
			kingFrom: sq(4),
			kingTo:   sq(6),
			rookFrom: sq(7),
			rookTo:   sq(5),
			between:  []chess.Square{sq(5), sq(6)},
			transit:  []chess.Square{sq(5), sq(6)},
		}
	}
	return castleSide{
		class:    chess.QueensideCastle,
		right:    chess.QueensideRight(colour),
		kingFrom: sq(4),
		kingTo:   sq(2),
		rookFrom: sq(0),
		rookTo:   sq(3),
		between:  []chess.Square{sq(1), sq(2), sq(3)},
		transit:  []chess.Square{sq(3), sq(2)},
	}
}

// castlingObstacle returns why the colour cannot castle on the given
// side, or "" when castling is allowed.
func castlingObstacle(board *chess.Board, colour chess.Colour, kingside bool) string {
	side := castleSquares(colour, kingside)

	if !board.Castling.Has(side.right) {
		return "no castling right"
	}
	if board.Get(side.kingFrom) != chess.MakeColouredPiece(colour, chess.King) {
		return "king not on its home square"
	}
	if board.Get(side.rookFrom) != chess.MakeColouredPiece(colour, chess.Rook) {
		return "rook not on its home square"
	}
	for _, sq := range side.between {
		if board.Get(sq) != chess.Empty {
			return fmt.Sprintf("%v is occupied", sq)
		}
	}
	enemy := colour.Opposite()
	if IsSquareAttacked(board, side.kingFrom, enemy) {
		return "king is in check"
	}
	for _, sq := range side.transit {
		if IsSquareAttacked(board, sq, enemy) {
			return fmt.Sprintf("%v is attacked", sq)
		}
	}
	return ""
}

var (
	sqA1 = chess.NewSquare(0, 0)
	sqH1 = chess.NewSquare(7, 0)
	sqA8 = chess.NewSquare(0, 7)
	sqH8 = chess.NewSquare(7, 7)
)

// cornerRight returns the castling right tied to a rook corner. Any move
// from or onto the corner removes it.
func cornerRight(sq chess.Square) chess.CastlingRights {
	switch sq {
	case sqA1:
		return chess.WhiteQueenside
	case sqH1:
		return chess.WhiteKingside
	case sqA8:
		return chess.BlackQueenside
	case sqH8:
		return chess.BlackKingside
	}
	return chess.NoCastling
}
