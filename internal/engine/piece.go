package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// pseudoTargets returns the squares the piece on from could move to,
// ignoring whether its own king would be left in check. Castling is
// handled separately.
func pseudoTargets(board *chess.Board, from chess.Square) []chess.Square {
	piece := board.Get(from)
	if piece == chess.Empty {
		return nil
	}
	colour := chess.ExtractColour(piece)

	switch chess.ExtractPiece(piece) {
	case chess.Pawn:
		return pawnTargets(board, from, colour)
	case chess.Knight:
		return offsetTargets(board, from, colour, knightOffsets[:])
	case chess.King:
		return offsetTargets(board, from, colour, kingOffsets[:])
	case chess.Bishop:
		return slidingTargets(board, from, colour, diagonalDirs[:])
	case chess.Rook:
		return slidingTargets(board, from, colour, straightDirs[:])
	case chess.Queen:
		targets := slidingTargets(board, from, colour, diagonalDirs[:])
		return append(targets, slidingTargets(board, from, colour, straightDirs[:])...)
	}
	return nil
}

// offsetTargets handles the fixed-step pieces (knight and king).
func offsetTargets(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Square {
	var targets []chess.Square
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		if target := board.Get(to); target == chess.Empty || chess.ExtractColour(target) != colour {
			targets = append(targets, to)
		}
	}
	return targets
}

// slidingTargets walks each ray until it leaves the board or meets a
// piece. An enemy piece ends the ray as a capture.
func slidingTargets(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Square {
	var targets []chess.Square
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			target := board.Get(to)
			if target != chess.Empty {
				if chess.ExtractColour(target) != colour {
					targets = append(targets, to)
				}
				break // Blocked
			}
			targets = append(targets, to)
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return targets
}
