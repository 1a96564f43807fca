// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the lowercase FEN side-to-move letter.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Piece represents a chess piece type, or a coloured piece when built
// with MakeColouredPiece. The zero value is Empty.
type Piece int

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece type.
func (p Piece) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceFromLetter returns the piece type for an English SAN/FEN letter
// in either case, or Empty.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return Empty
}

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
// The result is meaningless for Empty.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// PieceCode returns the two-character code used by board snapshots,
// e.g. "wP" or "bK". Empty squares return "".
func PieceCode(colouredPiece Piece) string {
	if colouredPiece == Empty {
		return ""
	}
	prefix := byte('b')
	if ExtractColour(colouredPiece) == White {
		prefix = 'w'
	}
	return string([]byte{prefix, ExtractPiece(colouredPiece).Letter()})
}

// FENLetter returns the FEN letter for a coloured piece: uppercase for
// White, lowercase for Black.
func FENLetter(colouredPiece Piece) byte {
	letter := ExtractPiece(colouredPiece).Letter()
	if ExtractColour(colouredPiece) == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// MoveClass categorizes the special-move kind of an applied move.
type MoveClass int

const (
	NormalMove MoveClass = iota
	DoublePawnPush
	EnPassantCapture
	KingsideCastle
	QueensideCastle
	Promotion
)

// String returns the string representation of a move class.
func (c MoveClass) String() string {
	switch c {
	case NormalMove:
		return "normal"
	case DoublePawnPush:
		return "double-pawn-push"
	case EnPassantCapture:
		return "en-passant"
	case KingsideCastle:
		return "castle-kingside"
	case QueensideCastle:
		return "castle-queenside"
	case Promotion:
		return "promotion"
	}
	return "unknown"
}

// CheckStatus indicates whether a move gives check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// String returns the SAN suffix for the status.
func (s CheckStatus) String() string {
	switch s {
	case Check:
		return "+"
	case Checkmate:
		return "#"
	}
	return ""
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'a'
)

// MaxMoveLen is the maximum length of a move text string.
const MaxMoveLen = 15
