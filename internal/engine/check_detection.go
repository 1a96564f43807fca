package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

var (
	knightOffsets   = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs    = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs    = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	promotionPieces = [4]chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}
)

// IsInCheck returns true if the given colour's king is in check.
// A board without that king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.KingSquare(colour)
	if king == chess.NoSquare {
		return false
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack diagonally forward, so look one rank behind the target.
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	behind := -pawnDirection(byColour)
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Offset(df, behind); ok && board.Get(from) == pawn {
			return true
		}
	}

	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, off := range knightOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from) == knight {
			return true
		}
	}

	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, off := range kingOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)
	bishop := chess.MakeColouredPiece(byColour, chess.Bishop)
	for _, dir := range diagonalDirs {
		if p := firstPieceAlong(board, sq, dir); p == bishop || p == queen {
			return true
		}
	}

	rook := chess.MakeColouredPiece(byColour, chess.Rook)
	for _, dir := range straightDirs {
		if p := firstPieceAlong(board, sq, dir); p == rook || p == queen {
			return true
		}
	}

	return false
}

// firstPieceAlong walks from sq in the given direction and returns the
// first piece met, or Empty when the ray leaves the board.
func firstPieceAlong(board *chess.Board, sq chess.Square, dir [2]int) chess.Piece {
	cur, ok := sq.Offset(dir[0], dir[1])
	for ok {
		if p := board.Get(cur); p != chess.Empty {
			return p
		}
		cur, ok = cur.Offset(dir[0], dir[1])
	}
	return chess.Empty
}

// pawnDirection returns the rank step a pawn of the colour moves by.
func pawnDirection(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return -1
}

// homeRank returns the 0-based back rank of the colour.
func homeRank(colour chess.Colour) int {
	if colour == chess.White {
		return 0
	}
	return chess.BoardSize - 1
}

// promotionRank returns the 0-based rank on which the colour's pawns promote.
func promotionRank(colour chess.Colour) int {
	return homeRank(colour.Opposite())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
