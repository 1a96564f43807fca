package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrEmptyGame, ErrInvalidFEN, ErrIllegalMove, ErrInvalidConfig,
		ErrMissingTag, ErrNotFound, ErrClosed,
	}
	for _, s := range sentinels {
		wrapped := fmt.Errorf("context: %w", s)
		if !errors.Is(wrapped, s) {
			t.Errorf("errors.Is(wrapped, %v) = false, want true", s)
		}
	}
}

func TestMoveError_Is(t *testing.T) {
	err := NewMoveError(AmbiguousMove, "Nd2", "b1, f3")

	if !errors.Is(err, ErrIllegalMove) {
		t.Error("errors.Is(MoveError, ErrIllegalMove) = false, want true")
	}

	wrapped := fmt.Errorf("replay: %w", err.WithPly(6))
	var me *MoveError
	if !errors.As(wrapped, &me) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if me.Kind != AmbiguousMove || me.Ply != 6 {
		t.Errorf("extracted = %+v; want AmbiguousMove at ply 6", me)
	}
	if err.Ply != -1 {
		t.Error("WithPly modified the receiver")
	}

	kind, ok := MoveKind(wrapped)
	if !ok || kind != AmbiguousMove {
		t.Errorf("MoveKind() = %v, %v; want AmbiguousMove, true", kind, ok)
	}
	if _, ok := MoveKind(ErrEmptyGame); ok {
		t.Error("MoveKind(ErrEmptyGame) reported a move error")
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name:     "with ply",
			err:      NewMoveError(CastlingBlocked, "O-O", "").WithPly(9),
			contains: []string{"O-O", "ply 9", "castling blocked"},
		},
		{
			name:     "with detail",
			err:      NewMoveError(MalformedMove, "Zz9", "unknown piece"),
			contains: []string{"Zz9", "malformed move", "unknown piece"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestGameError_Error verifies the error message format
func TestGameError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GameError
		contains []string
	}{
		{
			name: "full context",
			err: &GameError{
				Err:      ErrIllegalMove,
				GameNum:  5,
				PlyNum:   12,
				MoveText: "Nxe5",
				File:     "games.pgn",
				Line:     42,
			},
			contains: []string{"game 5", "ply 12", "Nxe5", "games.pgn", "42", "illegal move"},
		},
		{
			name: "library id",
			err: &GameError{
				Err:    ErrNotFound,
				GameID: "sample-immortal-game",
			},
			contains: []string{"game sample-immortal-game", "not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("GameError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestGameError_As verifies that errors.As works with GameError
func TestGameError_As(t *testing.T) {
	gameErr := &GameError{
		Err:      ErrIllegalMove,
		GameNum:  3,
		PlyNum:   24,
		MoveText: "O-O-O",
	}

	wrapped := fmt.Errorf("processing failed: %w", gameErr)

	var extractedErr *GameError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract GameError")
	}
	if extractedErr.GameNum != 3 {
		t.Errorf("extractedErr.GameNum = %d, want 3", extractedErr.GameNum)
	}
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("errors.Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrEmptyGame,
		File:     "tournament.pgn",
		Line:     100,
		Column:   15,
		Expected: "tag value",
		Got:      "end of line",
	}

	msg := err.Error()
	for _, s := range []string{"tournament.pgn", "100", "expected tag value", "empty game"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, s)
		}
	}
	if !errors.Is(err, ErrEmptyGame) {
		t.Error("errors.Is(parseErr, ErrEmptyGame) = false, want true")
	}
}

// TestWrap verifies the Wrap helpers
func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}

	wrapped := Wrapf(ErrInvalidFEN, "game %d", 3)
	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "game 3") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
