// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"sync"

	"github.com/lgbarn/pgnview-go/internal/chess"
)

// Signature identifies a game for duplicate detection.
type Signature struct {
	// Hash is the Zobrist hash of the final position.
	Hash uint64
	// Plies is the number of half-moves played.
	Plies int
	// Moves is the hash of the move list, used by exact matching.
	Moves uint64
}

// NewSignature builds the signature of a game ending in board.
func NewSignature(game *chess.Game, board *chess.Board) Signature {
	return Signature{
		Hash:  PositionHash(board),
		Plies: len(game.Moves),
		Moves: MoveHash(game.Moves),
	}
}

// DuplicateDetector remembers the games it has seen. It is safe for
// concurrent use.
type DuplicateDetector struct {
	mu         sync.Mutex
	exactMatch bool
	seen       map[uint64][]entry
	duplicates int
	unique     int
}

type entry struct {
	sig Signature
	id  int
}

// NewDuplicateDetector creates a detector. Without exactMatch two games are
// duplicates when they reach the same final position in the same number of
// plies; with it their move lists must also agree.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		exactMatch: exactMatch,
		seen:       make(map[uint64][]entry),
	}
}

// CheckAndAdd records the game identified by id. If an equal game was seen
// before, it returns that game's id and true and the new game is not added.
func (d *DuplicateDetector) CheckAndAdd(id int, game *chess.Game, board *chess.Board) (int, bool) {
	if board == nil {
		return 0, false
	}
	sig := NewSignature(game, board)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range d.seen[sig.Hash] {
		if d.matches(sig, e.sig) {
			d.duplicates++
			return e.id, true
		}
	}
	d.seen[sig.Hash] = append(d.seen[sig.Hash], entry{sig: sig, id: id})
	d.unique++
	return 0, false
}

func (d *DuplicateDetector) matches(a, b Signature) bool {
	if a.Hash != b.Hash || a.Plies != b.Plies {
		return false
	}
	return !d.exactMatch || a.Moves == b.Moves
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duplicates
}

// UniqueCount returns the number of distinct games recorded.
func (d *DuplicateDetector) UniqueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unique
}

// Reset forgets every recorded game.
func (d *DuplicateDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[uint64][]entry)
	d.duplicates = 0
	d.unique = 0
}
