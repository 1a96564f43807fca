// Package replay reconstructs the board of a parsed game at any ply by
// forward simulation from its starting position.
package replay

import (
	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
)

// Highlight marks the squares of the last move shown on a board.
type Highlight struct {
	From chess.Square
	To   chess.Square
}

// Snapshot is the board a viewer shows for a requested ply.
type Snapshot struct {
	// Board is the position after the last applied move.
	Board chess.Board

	// Highlight is the last applied move, or nil at the start position
	// or when the first move could not be applied.
	Highlight *Highlight

	// Move is the record of the last applied move, or nil.
	Move *chess.Move

	// Ply is the index of the last applied move; -1 when none was.
	Ply int

	// Err is the move error that stopped the replay short of the
	// requested ply, or nil.
	Err error
}

// Truncated reports whether the replay stopped early on an illegal move.
func (s Snapshot) Truncated() bool {
	return s.Err != nil
}

// BoardAtPly returns the board after moves[0..ply] of game, replayed from
// the standard initial position whatever the headers say. A negative ply
// yields the initial position. A ply past the end is clamped to the
// last move. Replay stops at the first move that fails to apply and the
// last reached board is returned with Err set.
func BoardAtPly(game *chess.Game, ply int) Snapshot {
	start := engine.NewInitialBoard()
	snap := Snapshot{Board: start, Ply: -1}
	if ply < 0 || len(game.Moves) == 0 {
		return snap
	}

	last := min(ply, len(game.Moves)-1)
	board, moves, err := engine.ApplyAll(start, game.Moves[:last+1])
	snap.Board = board
	snap.Err = err
	if n := len(moves); n > 0 {
		snap.setMove(moves[n-1], n-1)
	}
	return snap
}

func (s *Snapshot) setMove(mv chess.Move, ply int) {
	s.Move = &mv
	s.Highlight = &Highlight{From: mv.From, To: mv.To}
	s.Ply = ply
}
