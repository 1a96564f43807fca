package engine

import "github.com/lgbarn/pgnview-go/internal/chess"

// LegalMoves returns every legal move for the side to move, each with its
// SAN text and computed check status filled in.
func LegalMoves(board *chess.Board) []chess.Move {
	moves := legalMoves(board)
	for i := range moves {
		moves[i].Text = EncodeSAN(board, moves[i])
		moves[i].CheckStatus = checkStatusAfter(board, moves[i])
		moves[i].ClaimedCheck = moves[i].CheckStatus
	}
	return moves
}

// legalMoves generates the legal moves of the side to move without SAN text.
func legalMoves(board *chess.Board) []chess.Move {
	colour := board.ToMove
	var moves []chess.Move

	for from := chess.Square(0); from < chess.NumSquares; from++ {
		piece := board.Get(from)
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}
		isPawn := chess.ExtractPiece(piece) == chess.Pawn
		for _, to := range pseudoTargets(board, from) {
			if isPawn && to.Rank() == promotionRank(colour) {
				for _, promo := range promotionPieces {
					moves = appendIfLegal(moves, board, from, to, promo)
				}
				continue
			}
			moves = appendIfLegal(moves, board, from, to, chess.Empty)
		}
	}

	for _, kingside := range [2]bool{true, false} {
		if castlingObstacle(board, colour, kingside) != "" {
			continue
		}
		side := castleSquares(colour, kingside)
		_, mv := makeMove(board, side.kingFrom, side.kingTo, chess.Empty)
		moves = append(moves, mv)
	}
	return moves
}

func appendIfLegal(moves []chess.Move, board *chess.Board, from, to chess.Square, promo chess.Piece) []chess.Move {
	if _, mv, ok := tryMove(board, from, to, promo); ok {
		return append(moves, mv)
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	b := *board
	b.ToMove = colour

	for from := chess.Square(0); from < chess.NumSquares; from++ {
		piece := b.Get(from)
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}
		for _, to := range pseudoTargets(&b, from) {
			if _, _, ok := tryMove(&b, from, to, chess.Empty); ok {
				return true
			}
		}
	}
	// A legal castle implies a legal king step, so castling is not tried.
	return false
}

// tryMove makes a move on a copy of the board and reports whether it
// leaves the mover's king safe.
func tryMove(board *chess.Board, from, to chess.Square, promo chess.Piece) (chess.Board, chess.Move, bool) {
	colour := chess.ExtractColour(board.Get(from))
	next, mv := makeMove(board, from, to, promo)
	return next, mv, !IsInCheck(&next, colour)
}

// checkStatusAfter returns whether mv, legal on board, gives check or mate.
func checkStatusAfter(board *chess.Board, mv chess.Move) chess.CheckStatus {
	next, _ := makeMove(board, mv.From, mv.To, chess.ExtractPiece(mv.PromotedPiece))
	return checkStatus(&next)
}

// checkStatus reports whether the side to move is in check or checkmated.
func checkStatus(board *chess.Board) chess.CheckStatus {
	if !IsInCheck(board, board.ToMove) {
		return chess.NoCheck
	}
	if HasLegalMoves(board, board.ToMove) {
		return chess.Check
	}
	return chess.Checkmate
}
