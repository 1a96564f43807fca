package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
		if b.EnPassant != NoSquare {
			t.Errorf("EnPassant = %v; want NoSquare", b.EnPassant)
		}
		if b.Castling != NoCastling {
			t.Errorf("Castling = %v; want -", b.Castling)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for sq := Square(0); sq < NumSquares; sq++ {
			if got := b.Get(sq); got != Empty {
				t.Errorf("Get(%v) = %v; want Empty", sq, got)
			}
		}
	})

	t.Run("missing king", func(t *testing.T) {
		if got := b.KingSquare(White); got != NoSquare {
			t.Errorf("KingSquare(White) = %v; want NoSquare", got)
		}
	})
}

func TestInitialBoard(t *testing.T) {
	b := InitialBoard()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white rook h1", "h1", W(Rook)},
		{"white pawn a2", "a2", W(Pawn)},
		{"white pawn h2", "h2", W(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
		{"black rook h8", "h8", B(Rook)},
		{"empty e3", "e3", Empty},
		{"empty c6", "c6", Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Get(MustParseSquare(tt.sq))
			if got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}

	t.Run("king positions", func(t *testing.T) {
		if got := b.KingSquare(White); got.String() != "e1" {
			t.Errorf("White king = %v; want e1", got)
		}
		if got := b.KingSquare(Black); got.String() != "e8" {
			t.Errorf("Black king = %v; want e8", got)
		}
	})

	t.Run("castling rights", func(t *testing.T) {
		if got := b.Castling.String(); got != "KQkq" {
			t.Errorf("Castling = %s; want KQkq", got)
		}
	})

	t.Run("grid orientation", func(t *testing.T) {
		grid := b.Grid()
		if grid[0][4] != "bK" {
			t.Errorf("grid[0][4] = %q; want bK", grid[0][4])
		}
		if grid[7][3] != "wQ" {
			t.Errorf("grid[7][3] = %q; want wQ", grid[7][3])
		}
		if grid[4][4] != "" {
			t.Errorf("grid[4][4] = %q; want empty", grid[4][4])
		}
	})
}

func TestBoardIsValue(t *testing.T) {
	original := InitialBoard()
	copied := original
	copied.Set(MustParseSquare("e2"), Empty)
	copied.ToMove = Black

	if original.Get(MustParseSquare("e2")) != W(Pawn) {
		t.Error("modifying a copy changed the original squares")
	}
	if original.ToMove != White {
		t.Error("modifying a copy changed the original side to move")
	}
}

func TestSquareConversion(t *testing.T) {
	t.Parallel()

	for sq := Square(0); sq < NumSquares; sq++ {
		name := sq.String()
		got, err := ParseSquare(name)
		if err != nil {
			t.Fatalf("ParseSquare(%q) error: %v", name, err)
		}
		if got != sq {
			t.Errorf("ParseSquare(%q) = %d; want %d", name, got, sq)
		}
	}

	invalid := []string{"", "e", "i1", "a9", "a0", "e44"}
	for _, s := range invalid {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded; want error", s)
		}
	}
}

func TestSquareCoords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sq   string
		want [2]int
	}{
		{"a8", [2]int{0, 0}},
		{"h1", [2]int{7, 7}},
		{"d6", [2]int{2, 3}},
		{"e7", [2]int{1, 4}},
	}
	for _, tt := range tests {
		if got := MustParseSquare(tt.sq).Coords(); got != tt.want {
			t.Errorf("%s.Coords() = %v; want %v", tt.sq, got, tt.want)
		}
	}
}

func TestSquareOffset(t *testing.T) {
	t.Parallel()

	if sq, ok := MustParseSquare("g1").Offset(2, 1); ok {
		t.Errorf("g1 offset (2,1) = %v; want off board", sq)
	}
	if sq, ok := MustParseSquare("g1").Offset(-1, 2); !ok || sq.String() != "f3" {
		t.Errorf("g1 offset (-1,2) = %v, %v; want f3, true", sq, ok)
	}
}

func TestColouredPieces(t *testing.T) {
	t.Parallel()

	for _, colour := range []Colour{White, Black} {
		for kind := Pawn; kind <= King; kind++ {
			p := MakeColouredPiece(colour, kind)
			if ExtractColour(p) != colour || ExtractPiece(p) != kind {
				t.Errorf("round trip of %v %v failed", colour, kind)
			}
		}
	}
	if got := PieceCode(B(Knight)); got != "bN" {
		t.Errorf("PieceCode(black knight) = %q; want bN", got)
	}
	if got := FENLetter(B(Queen)); got != 'q' {
		t.Errorf("FENLetter(black queen) = %c; want q", got)
	}
}

func TestTagsOverwriteInPlace(t *testing.T) {
	var tags Tags
	tags.Set("Event", "A")
	tags.Set("White", "X")
	tags.Set("Event", "B")

	if len(tags) != 2 {
		t.Fatalf("len(tags) = %d; want 2", len(tags))
	}
	if tags[0].Name != "Event" || tags[0].Value != "B" {
		t.Errorf("tags[0] = %+v; want Event=B", tags[0])
	}
	if !tags.Has("White") || tags.Has("Black") {
		t.Error("Has() reported wrong presence")
	}
}

