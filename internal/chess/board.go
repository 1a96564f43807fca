package chess

// CastlingRights holds the four independent castling flags.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether all flags in r are set.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// String returns the FEN castling field, "-" when no rights remain.
func (c CastlingRights) String() string {
	var s []byte
	if c.Has(WhiteKingside) {
		s = append(s, 'K')
	}
	if c.Has(WhiteQueenside) {
		s = append(s, 'Q')
	}
	if c.Has(BlackKingside) {
		s = append(s, 'k')
	}
	if c.Has(BlackQueenside) {
		s = append(s, 'q')
	}
	if len(s) == 0 {
		return "-"
	}
	return string(s)
}

// KingsideRight returns the kingside castling flag for a colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside castling flag for a colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// Board represents a chess position with all state needed to continue
// the game. Board is a value type: assigning it copies the position.
type Board struct {
	// The board squares, indexed by Square.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// Remaining castling rights.
	Castling CastlingRights

	// The square a pawn may capture onto en passant, or NoSquare.
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current full-move number, starting at 1.
	MoveNumber int
}

// NewBoard creates an empty board with White to move.
func NewBoard() Board {
	return Board{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
	}
}

var backRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialBoard returns the standard chess starting position.
func InitialBoard() Board {
	b := NewBoard()
	for file := 0; file < BoardSize; file++ {
		b.Squares[NewSquare(file, 0)] = W(backRank[file])
		b.Squares[NewSquare(file, 1)] = W(Pawn)
		b.Squares[NewSquare(file, 6)] = B(Pawn)
		b.Squares[NewSquare(file, 7)] = B(backRank[file])
	}
	b.Castling = AllCastling
	return b
}

// Get returns the piece on a square; off-board squares read as Empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return b.Squares[sq]
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq] = piece
	}
}

// KingSquare returns the square of the given colour's king, or NoSquare
// when that king is missing.
func (b *Board) KingSquare(colour Colour) Square {
	king := MakeColouredPiece(colour, King)
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// PiecesOf returns the squares holding pieces of the given colour and
// kind, in square order.
func (b *Board) PiecesOf(colour Colour, kind Piece) []Square {
	target := MakeColouredPiece(colour, kind)
	var squares []Square
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq] == target {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Grid returns the board as 8 rows of piece codes, row 0 being rank 8.
// Empty squares are "".
func (b *Board) Grid() [BoardSize][BoardSize]string {
	var grid [BoardSize][BoardSize]string
	for sq := Square(0); sq < NumSquares; sq++ {
		rc := sq.Coords()
		grid[rc[0]][rc[1]] = PieceCode(b.Squares[sq])
	}
	return grid
}

// MovePair represents a source-destination square pair.
type MovePair struct {
	From Square
	To   Square
}
