// Package errors provides sentinel errors and error types for pgnview.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrEmptyGame indicates PGN text with neither headers nor moves.
	ErrEmptyGame = errors.New("empty game")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingTag indicates a required PGN tag is missing.
	ErrMissingTag = errors.New("missing required tag")

	// ErrNotFound indicates an unknown game id.
	ErrNotFound = errors.New("game not found")

	// ErrClosed indicates use of a closed library or store.
	ErrClosed = errors.New("closed")
)

// Is is errors.Is, re-exported so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// MoveErrorKind classifies why a SAN move could not be applied.
type MoveErrorKind int

const (
	// NoLegalSource: no piece of the stated kind can legally reach the target.
	NoLegalSource MoveErrorKind = iota
	// AmbiguousMove: more than one piece can legally reach the target.
	AmbiguousMove
	// IllegalKingExposure: the only candidates would leave their king in check.
	IllegalKingExposure
	// CastlingBlocked: castling rights, path or attacked squares forbid it.
	CastlingBlocked
	// MissingPromotion: a pawn reaches the last rank without a promotion piece.
	MissingPromotion
	// InvalidEnPassant: a pawn capture onto an empty square that is not the en-passant target.
	InvalidEnPassant
	// MalformedMove: the text is not valid SAN.
	MalformedMove
)

// String returns the kind name.
func (k MoveErrorKind) String() string {
	switch k {
	case NoLegalSource:
		return "no legal source"
	case AmbiguousMove:
		return "ambiguous move"
	case IllegalKingExposure:
		return "king left in check"
	case CastlingBlocked:
		return "castling blocked"
	case MissingPromotion:
		return "missing promotion"
	case InvalidEnPassant:
		return "invalid en passant"
	case MalformedMove:
		return "malformed move"
	}
	return "unknown"
}

// MoveError reports a SAN move that could not be applied to a position.
// It matches ErrIllegalMove with errors.Is().
type MoveError struct {
	Kind   MoveErrorKind
	SAN    string // The move text as given
	Ply    int    // 0-based ply index, or -1 when unknown
	Detail string // Optional extra context
}

// NewMoveError creates a MoveError with an unknown ply.
func NewMoveError(kind MoveErrorKind, san, detail string) *MoveError {
	return &MoveError{Kind: kind, SAN: san, Ply: -1, Detail: detail}
}

// Error returns a formatted error message.
func (e *MoveError) Error() string {
	var b strings.Builder
	b.WriteString("illegal move")
	if e.SAN != "" {
		fmt.Fprintf(&b, " %q", e.SAN)
	}
	if e.Ply >= 0 {
		fmt.Fprintf(&b, " at ply %d", e.Ply)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns ErrIllegalMove so that errors.Is(err, ErrIllegalMove) holds.
func (e *MoveError) Unwrap() error {
	return ErrIllegalMove
}

// WithPly returns a copy of the error annotated with a ply index.
func (e *MoveError) WithPly(ply int) *MoveError {
	c := *e
	c.Ply = ply
	return &c
}

// MoveKind extracts the MoveErrorKind from err, if err is a MoveError.
func MoveKind(err error) (MoveErrorKind, bool) {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Kind, true
	}
	return 0, false
}

// GameError wraps errors with game context, including game number or id,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the file (0 if not applicable)
	GameID   string // Library id (if known)
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
	Line     int    // Line number in source file (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	}

	switch {
	case e.GameID != "":
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	case e.GameNum > 0:
		parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	}

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with location context.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		} else {
			loc = "line "
		}
		loc += fmt.Sprintf("%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	if loc != "" {
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
