package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/engine"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t testing.TB, got, want any, msgAndArgs ...any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%smismatch (-want +got):\n%s", prefix(msgAndArgs...), diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		t.Errorf("%sunexpected error: %v", prefix(msgAndArgs...), err)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%serror = %v, want %v", prefix(msgAndArgs...), err, target)
	}
}

// AssertMoveKind fails unless err is a MoveError of the given kind.
func AssertMoveKind(t testing.TB, err error, want errors.MoveErrorKind, msgAndArgs ...any) {
	t.Helper()
	kind, ok := errors.MoveKind(err)
	if !ok {
		t.Errorf("%serror = %v, want MoveError %q", prefix(msgAndArgs...), err, want)
		return
	}
	if kind != want {
		t.Errorf("%smove error kind = %q, want %q", prefix(msgAndArgs...), kind, want)
	}
}

// AssertFEN fails unless the board serialises to want.
func AssertFEN(t testing.TB, board chess.Board, want string, msgAndArgs ...any) {
	t.Helper()
	if got := engine.BoardToFEN(&board); got != want {
		t.Errorf("%sFEN = %q, want %q", prefix(msgAndArgs...), got, want)
	}
}

// prefix formats optional message arguments as "msg: ".
func prefix(msgAndArgs ...any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...) + ": "
	}
	return fmt.Sprint(msgAndArgs[0]) + ": "
}
