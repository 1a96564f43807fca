package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// pawnTargets returns the pushes and captures open to a pawn.
func pawnTargets(board *chess.Board, from chess.Square, colour chess.Colour) []chess.Square {
	var targets []chess.Square
	dir := pawnDirection(colour)

	if one, ok := from.Offset(0, dir); ok && board.Get(one) == chess.Empty {
		targets = append(targets, one)

		// Double push from starting rank
		if from.Rank() == homeRank(colour)+dir {
			if two, ok := from.Offset(0, 2*dir); ok && board.Get(two) == chess.Empty {
				targets = append(targets, two)
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		target := board.Get(to)
		if target != chess.Empty {
			if chess.ExtractColour(target) != colour {
				targets = append(targets, to)
			}
			continue
		}
		if isEnPassantCapture(board, from, to) {
			targets = append(targets, to)
		}
	}
	return targets
}

// isEnPassantCapture reports whether moving the pawn on from to the
// empty square to captures en passant: to must be the recorded target
// and an enemy pawn must stand beside from on the destination file.
func isEnPassantCapture(board *chess.Board, from, to chess.Square) bool {
	if to == chess.NoSquare || to != board.EnPassant || from.File() == to.File() {
		return false
	}
	pawn := board.Get(from)
	if chess.ExtractPiece(pawn) != chess.Pawn || board.Get(to) != chess.Empty {
		return false
	}
	victim := chess.NewSquare(to.File(), from.Rank())
	return board.Get(victim) == chess.MakeColouredPiece(chess.ExtractColour(pawn).Opposite(), chess.Pawn)
}
