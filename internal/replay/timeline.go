package replay

import (
	"sync"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// Timeline memoises the replay of one game. Boards are computed once as
// the cursor advances; earlier plies are served from memory. A Timeline
// is safe for concurrent use.
type Timeline struct {
	game *chess.Game

	mu       sync.Mutex
	boards   []chess.Board // boards[i+1] is the position after ply i
	moves    []chess.Move
	err      error
	reported bool
}

// NewTimeline creates a timeline positioned at the start of game.
func NewTimeline(game *chess.Game) *Timeline {
	return &Timeline{
		game:   game,
		boards: []chess.Board{engine.NewInitialBoard()},
		moves:  make([]chess.Move, 0, len(game.Moves)),
	}
}

// Game returns the game the timeline replays.
func (t *Timeline) Game() *chess.Game {
	return t.game
}

// At returns the snapshot for ply with the same semantics as BoardAtPly.
func (t *Timeline) At(ply int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ply < 0 || len(t.game.Moves) == 0 {
		return Snapshot{Board: t.boards[0], Ply: -1}
	}

	target := min(ply, len(t.game.Moves)-1)
	t.advance(target)

	reached := min(target, len(t.moves)-1)
	snap := Snapshot{Board: t.boards[reached+1], Ply: -1}
	if reached >= 0 {
		snap.setMove(t.moves[reached], reached)
	}
	if reached < target {
		snap.Err = t.err
	}
	return snap
}

// Verify replays the whole game and returns the number of moves applied
// and the error that stopped the replay, if any.
func (t *Timeline) Verify() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advance(len(t.game.Moves) - 1)
	return len(t.moves), t.err
}

// advance applies moves until target is reached or a move fails.
// t.mu must be held.
func (t *Timeline) advance(target int) {
	for len(t.moves) <= target && t.err == nil {
		ply := len(t.moves)
		next, mv, err := engine.Apply(t.boards[ply], t.game.Moves[ply])
		if err != nil {
			var me *errors.MoveError
			if errors.As(err, &me) {
				err = me.WithPly(ply)
			}
			t.err = err
			return
		}
		t.boards = append(t.boards, next)
		t.moves = append(t.moves, *mv)
	}
}

// markReported records that the stopping error has been logged and
// reports whether this call was the first.
func (t *Timeline) markReported() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reported {
		return false
	}
	t.reported = true
	return true
}
