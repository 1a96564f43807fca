// Package store defines the persistence interface for the game library.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = fmt.Errorf("store: %w", errors.ErrNotFound)

	// ErrClosed is returned by every method after Close.
	ErrClosed = fmt.Errorf("store: %w", errors.ErrClosed)
)

// Record is a stored game: the submitted PGN text plus the headers parsed
// from it when it was accepted.
type Record struct {
	ID      string     `json:"id"`
	PGN     string     `json:"pgn"`
	Tags    chess.Tags `json:"tags"`
	AddedAt time.Time  `json:"addedAt"`
}

// Clone returns a copy that shares no mutable state with r.
func (r Record) Clone() Record {
	r.Tags = r.Tags.Clone()
	return r
}

// Store defines the interface for storage backends.
type Store interface {
	// Put inserts or replaces the record with rec.ID.
	Put(ctx context.Context, rec Record) error

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records, oldest first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// ValidID reports whether id is usable as a record id: 1 to 64 ASCII
// letters, digits, '-' or '_'.
func ValidID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
