package hashing

import "github.com/lgbarn/pgnview-go/internal/chess"

// zobrist holds the random keys for position hashing. Pieces are indexed by
// their coloured value, which always fits in six bits.
type zobrist struct {
	pieces    [chess.NumSquares][64]uint64
	whiteMove uint64
	castling  [16]uint64
	enPassant [chess.BoardSize]uint64
}

var keys = newZobrist(0x9E3779B97F4A7C15)

// newZobrist fills the key tables from a splitmix64 sequence so that
// hashes are stable across runs.
func newZobrist(seed uint64) *zobrist {
	next := func() uint64 {
		seed += 0x9E3779B97F4A7C15
		z := seed
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	z := &zobrist{}
	for sq := range z.pieces {
		for p := range z.pieces[sq] {
			z.pieces[sq][p] = next()
		}
	}
	z.whiteMove = next()
	for i := range z.castling {
		z.castling[i] = next()
	}
	for i := range z.enPassant {
		z.enPassant[i] = next()
	}
	return z
}

// PositionHash returns the Zobrist hash of a position. Move counters are
// not part of the hash.
func PositionHash(board *chess.Board) uint64 {
	var h uint64
	for sq, p := range board.Squares {
		if p != chess.Empty {
			h ^= keys.pieces[sq][p&63]
		}
	}
	if board.ToMove == chess.White {
		h ^= keys.whiteMove
	}
	h ^= keys.castling[board.Castling&15]
	if board.EnPassant != chess.NoSquare {
		h ^= keys.enPassant[board.EnPassant.File()]
	}
	return h
}

// MoveHash returns an FNV-1a hash of a move list. Check and annotation
// suffixes are significant.
func MoveHash(moves []string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for _, mv := range moves {
		for i := 0; i < len(mv); i++ {
			h ^= uint64(mv[i])
			h *= prime
		}
		h ^= ' '
		h *= prime
	}
	return h
}
