package chess

import "fmt"

// Square identifies one of the 64 board squares as rank*8 + file, where
// rank 0 is the first rank and file 0 is the a-file.
type Square int8

// NoSquare marks an absent square (no en-passant target, missing king).
const NoSquare Square = -1

// NewSquare returns the square at the given file and rank (both 0-7).
// Out of range coordinates give NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// ParseSquare converts algebraic notation such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	sq := NewSquare(int(s[0])-FileBase, int(s[1])-RankBase)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on bad input.
// Intended for constants and tests.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the 0-based file of the square.
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank of the square.
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Valid reports whether s is one of the 64 board squares.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Offset returns the square df files and dr ranks away, and false when
// that falls off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	sq := NewSquare(s.File()+df, s.Rank()+dr)
	return sq, sq != NoSquare
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())})
}

// Coords returns the [row, col] position of the square in a grid whose
// row 0 is rank 8, as used by board snapshots.
func (s Square) Coords() [2]int {
	return [2]int{BoardSize - 1 - s.Rank(), s.File()}
}
