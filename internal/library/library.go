// Package library keeps the user's collection of games. It is the only
// place that validates submissions, assigns ids and talks to the store.
package library

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/parser"
	"github.com/lgbarn/pgnview-go/internal/replay"
	"github.com/lgbarn/pgnview-go/internal/stats"
	"github.com/lgbarn/pgnview-go/internal/store"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = fmt.Errorf("library: %w", errors.ErrClosed)

// Option configures a Library.
type Option interface {
	apply(*options)
}

type options struct {
	logger *zap.Logger
	stats  stats.Collector
	now    func() time.Time
	newID  func() string
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithStats sets the stats collector.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithClock sets the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.now = now
	})
}

// WithIDGenerator sets the function that assigns ids to new games.
// The default is a random UUID.
func WithIDGenerator(f func() string) Option {
	return optionFunc(func(o *options) {
		o.newID = f
	})
}

// Entry is a stored game together with its parsed form.
type Entry struct {
	store.Record
	Game *chess.Game
}

// Library validates, stores and replays games.
type Library struct {
	store    store.Store
	replayer *replay.Replayer
	logger   *zap.Logger
	stats    stats.Collector
	now      func() time.Time
	newID    func() string

	mu     sync.RWMutex
	closed bool
}

// New creates a Library over s. Boards are served through r.
func New(s store.Store, r *replay.Replayer, opts ...Option) *Library {
	o := options{
		logger: zap.NewNop(),
		stats:  stats.NewNoop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &Library{
		store:    s,
		replayer: r,
		logger:   o.logger.Named("library"),
		stats:    o.stats,
		now:      o.now,
		newID:    o.newID,
	}
}

// Validate parses text and checks that it names both players. The
// returned game is what Add would store.
func Validate(text string) (*chess.Game, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyGame
	}
	game, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	for _, tag := range []string{chess.WhiteTag, chess.BlackTag} {
		if strings.TrimSpace(game.GetTag(tag)) == "" {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingTag, tag)
		}
	}
	return game, nil
}

// Add validates text and stores it under a new id.
func (l *Library) Add(ctx context.Context, text string) (store.Record, error) {
	return l.add(ctx, l.newID(), text)
}

func (l *Library) add(ctx context.Context, id, text string) (store.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return store.Record{}, ErrClosed
	}

	game, err := Validate(text)
	if err != nil {
		l.stats.IncCounter(stats.MetricGamesRejected, 1)
		l.logger.Debug("rejected game", zap.Error(err))
		return store.Record{}, err
	}

	rec := store.Record{
		ID:      id,
		PGN:     text,
		Tags:    game.Tags.Clone(),
		AddedAt: l.now().UTC(),
	}
	if err := l.store.Put(ctx, rec); err != nil {
		return store.Record{}, fmt.Errorf("storing game: %w", err)
	}

	l.stats.IncCounter(stats.MetricGamesAdded, 1)
	l.updateStored(ctx)
	l.logger.Info("added game",
		zap.String("game", id),
		zap.String("white", game.White()),
		zap.String("black", game.Black()),
		zap.Int("plies", game.PlyCount()),
	)
	return rec, nil
}

// Get returns the stored game with id, parsed.
func (l *Library) Get(ctx context.Context, id string) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return Entry{}, ErrClosed
	}
	return l.get(ctx, id)
}

func (l *Library) get(ctx context.Context, id string) (Entry, error) {
	rec, err := l.store.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	game, err := parser.Parse(rec.PGN)
	if err != nil {
		return Entry{}, &errors.GameError{Err: err, GameID: id}
	}
	return Entry{Record: rec, Game: game}, nil
}

// List returns every stored record in the order they were added.
func (l *Library) List(ctx context.Context) ([]store.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}
	return l.store.List(ctx)
}

// Delete removes the game with id.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}

	if err := l.store.Delete(ctx, id); err != nil {
		return err
	}
	l.replayer.Forget(id)
	l.updateStored(ctx)
	l.logger.Info("deleted game", zap.String("game", id))
	return nil
}

// Board returns the snapshot of game id at ply.
func (l *Library) Board(ctx context.Context, id string, ply int) (replay.Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return replay.Snapshot{}, ErrClosed
	}

	entry, err := l.get(ctx, id)
	if err != nil {
		return replay.Snapshot{}, err
	}
	return l.replayer.Snapshot(id, entry.Game, ply), nil
}

// SeedSample adds the Immortal Game under SampleID when the library is
// empty. It reports whether the sample was added.
func (l *Library) SeedSample(ctx context.Context) (bool, error) {
	recs, err := l.List(ctx)
	if err != nil {
		return false, err
	}
	if len(recs) > 0 {
		return false, nil
	}
	if _, err := l.add(ctx, SampleID, samplePGN); err != nil {
		return false, fmt.Errorf("seeding sample game: %w", err)
	}
	return true, nil
}

// Close closes the underlying store. Closing twice is harmless.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.store.Close()
}

func (l *Library) updateStored(ctx context.Context) {
	recs, err := l.store.List(ctx)
	if err != nil {
		l.logger.Warn("counting stored games", zap.Error(err))
		return
	}
	l.stats.SetGauge(stats.MetricGamesStored, int64(len(recs)))
}
