package chess

// Move represents a single applied chess move with all associated data.
type Move struct {
	// The move text as written (e.g., "Nf3", "exd6", "O-O").
	Text string

	// Class of move (normal, double push, castle, etc.).
	Class MoveClass

	// Source and destination squares. For castling these are the
	// king's squares.
	From Square
	To   Square

	// The coloured piece being moved.
	PieceToMove Piece

	// The coloured piece captured (Empty if no capture).
	CapturedPiece Piece

	// The coloured piece promoted to (Empty if not a promotion).
	PromotedPiece Piece

	// Whether this move gives check or checkmate, as computed.
	CheckStatus CheckStatus

	// The status claimed by a "+" or "#" suffix in Text.
	ClaimedCheck CheckStatus
}

// IsCapture returns true if this move is a capture.
func (m *Move) IsCapture() bool {
	return m.CapturedPiece != Empty
}

// IsPromotion returns true if this move is a pawn promotion.
func (m *Move) IsPromotion() bool {
	return m.Class == Promotion
}

// IsCastle returns true if this move is a castling move.
func (m *Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// CheckMismatch reports whether the check suffix in the move text
// disagrees with the computed check status.
func (m *Move) CheckMismatch() bool {
	return m.ClaimedCheck != m.CheckStatus
}

// Pair returns the from/to squares of the move.
func (m *Move) Pair() MovePair {
	return MovePair{From: m.From, To: m.To}
}
