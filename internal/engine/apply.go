// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// Apply validates a SAN move against board and returns the resulting
// position together with the move record. board itself is not modified;
// on error the returned board equals the input and the error is a
// *errors.MoveError.
func Apply(board chess.Board, san string) (chess.Board, *chess.Move, error) {
	d, err := DecodeSAN(san)
	if err != nil {
		return board, nil, err
	}

	var next chess.Board
	var mv chess.Move
	if d.Castle != chess.NormalMove {
		next, mv, err = applyCastle(&board, d)
	} else {
		next, mv, err = applyPieceMove(&board, d)
	}
	if err != nil {
		return board, nil, err
	}

	mv.Text = san
	mv.ClaimedCheck = d.Check
	mv.CheckStatus = checkStatus(&next)
	return next, &mv, nil
}

// ApplyAll applies a sequence of SAN moves, stopping at the first one
// that fails. It returns the last reached board, the applied moves and
// the error (annotated with its ply) if any.
func ApplyAll(board chess.Board, sans []string) (chess.Board, []chess.Move, error) {
	moves := make([]chess.Move, 0, len(sans))
	for ply, san := range sans {
		next, mv, err := Apply(board, san)
		if err != nil {
			var me *errors.MoveError
			if errors.As(err, &me) {
				return board, moves, me.WithPly(ply)
			}
			return board, moves, err
		}
		board = next
		moves = append(moves, *mv)
	}
	return board, moves, nil
}

// applyCastle applies a castling move.
func applyCastle(board *chess.Board, d SAN) (chess.Board, chess.Move, error) {
	colour := board.ToMove
	kingside := d.Castle == chess.KingsideCastle

	if reason := castlingObstacle(board, colour, kingside); reason != "" {
		return *board, chess.Move{}, errors.NewMoveError(errors.CastlingBlocked, d.Text, reason)
	}

	side := castleSquares(colour, kingside)
	next, mv := makeMove(board, side.kingFrom, side.kingTo, chess.Empty)
	return next, mv, nil
}

// applyPieceMove resolves the source square of a pawn or piece move and
// applies it.
func applyPieceMove(board *chess.Board, d SAN) (chess.Board, chess.Move, error) {
	colour := board.ToMove
	fail := func(kind errors.MoveErrorKind, detail string) (chess.Board, chess.Move, error) {
		return *board, chess.Move{}, errors.NewMoveError(kind, d.Text, detail)
	}

	if d.Promotion != chess.Empty && d.To.Rank() != promotionRank(colour) {
		return fail(errors.MalformedMove, "promotion before the last rank")
	}

	from, kind, detail := resolveSource(board, d)
	if from == chess.NoSquare {
		return fail(kind, detail)
	}

	if d.Piece == chess.Pawn && d.To.Rank() == promotionRank(colour) && d.Promotion == chess.Empty {
		return fail(errors.MissingPromotion, fmt.Sprintf("pawn reaches %v", d.To))
	}

	next, mv := makeMove(board, from, d.To, d.Promotion)
	return next, mv, nil
}

// resolveSource finds the single piece that can legally make the move.
// When none or several qualify it returns NoSquare with the error kind.
func resolveSource(board *chess.Board, d SAN) (chess.Square, errors.MoveErrorKind, string) {
	colour := board.ToMove
	var pseudo, legal []chess.Square

	for _, from := range board.PiecesOf(colour, d.Piece) {
		if !d.matchesSource(from) {
			continue
		}
		if !slices.Contains(pseudoTargets(board, from), d.To) {
			continue
		}
		pseudo = append(pseudo, from)
		if _, _, ok := tryMove(board, from, d.To, d.Promotion); ok {
			legal = append(legal, from)
		}
	}

	switch {
	case len(legal) == 1:
		return legal[0], 0, ""
	case len(legal) > 1:
		return chess.NoSquare, errors.AmbiguousMove, "candidates " + joinSquares(legal)
	case len(pseudo) > 0:
		return chess.NoSquare, errors.IllegalKingExposure, "from " + joinSquares(pseudo)
	case d.Piece == chess.Pawn && d.Capture && board.Get(d.To) == chess.Empty && d.To != board.EnPassant:
		return chess.NoSquare, errors.InvalidEnPassant, fmt.Sprintf("%v is not the en passant square", d.To)
	}
	return chess.NoSquare, errors.NoLegalSource, fmt.Sprintf("no %s can reach %v", strings.ToLower(d.Piece.String()), d.To)
}

// makeMove moves the piece on from to to, handling the side effects of
// en passant, castling and promotion, and updates castling rights,
// en-passant target, clocks and side to move. Legality is not checked.
func makeMove(board *chess.Board, from, to chess.Square, promo chess.Piece) (chess.Board, chess.Move) {
	next := *board
	piece := board.Get(from)
	colour := chess.ExtractColour(piece)
	kind := chess.ExtractPiece(piece)

	mv := chess.Move{
		Class:         chess.NormalMove,
		From:          from,
		To:            to,
		PieceToMove:   piece,
		CapturedPiece: board.Get(to),
	}

	switch {
	case kind == chess.Pawn && isEnPassantCapture(board, from, to):
		victim := chess.NewSquare(to.File(), from.Rank())
		mv.CapturedPiece = next.Get(victim)
		next.Set(victim, chess.Empty)
		mv.Class = chess.EnPassantCapture
	case kind == chess.King && abs(to.File()-from.File()) == 2:
		side := castleSquares(colour, to.File() > from.File())
		next.Set(side.rookTo, next.Get(side.rookFrom))
		next.Set(side.rookFrom, chess.Empty)
		mv.Class = side.class
	}

	next.Set(from, chess.Empty)
	next.Set(to, piece)
	if kind == chess.Pawn && promo != chess.Empty {
		mv.PromotedPiece = chess.MakeColouredPiece(colour, promo)
		next.Set(to, mv.PromotedPiece)
		mv.Class = chess.Promotion
	}

	if kind == chess.King {
		next.Castling &^= chess.KingsideRight(colour) | chess.QueensideRight(colour)
	}
	next.Castling &^= cornerRight(from) | cornerRight(to)

	next.EnPassant = chess.NoSquare
	if kind == chess.Pawn && abs(to.Rank()-from.Rank()) == 2 {
		next.EnPassant = chess.NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		mv.Class = chess.DoublePawnPush
	}

	if kind == chess.Pawn || mv.CapturedPiece != chess.Empty {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if colour == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = colour.Opposite()

	return next, mv
}

func joinSquares(squares []chess.Square) string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return strings.Join(names, ", ")
}
