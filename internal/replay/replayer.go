package replay

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
	"github.com/lgbarn/pgnview-go/internal/stats"
)

// DefaultCacheSize is the number of timelines a Replayer keeps.
const DefaultCacheSize = 128

// Option configures a Replayer.
type Option interface {
	apply(*options)
}

type options struct {
	cacheSize int
	logger    *zap.Logger
	stats     stats.Collector
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithCacheSize sets how many game timelines are kept.
func WithCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheSize = n
	})
}

// WithLogger sets the logger.
// If not set, logging is disabled.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// Replayer serves snapshots for stored games, keeping the timelines of
// recently viewed games in an LRU cache keyed by game id.
type Replayer struct {
	cache  *lru.Cache[string, *Timeline]
	logger *zap.Logger
	stats  stats.Collector
}

// New creates a Replayer.
func New(opts ...Option) (*Replayer, error) {
	o := options{
		cacheSize: DefaultCacheSize,
		logger:    zap.NewNop(),
		stats:     stats.NewNoop(),
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.cacheSize <= 0 {
		return nil, fmt.Errorf("%w: cache size must be positive, got %d", errors.ErrInvalidConfig, o.cacheSize)
	}

	cache, err := lru.New[string, *Timeline](o.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Replayer{
		cache:  cache,
		logger: o.logger.Named("replay"),
		stats:  o.stats,
	}, nil
}

// Snapshot returns the board of game id at ply. The first time a game is
// found to contain an illegal move, the move is logged.
func (r *Replayer) Snapshot(id string, game *chess.Game, ply int) Snapshot {
	tl := r.Timeline(id, game)
	snap := tl.At(ply)
	game = tl.Game()

	r.stats.IncCounter(stats.MetricReplays, 1)
	r.stats.ObserveHistogram(stats.MetricReplayPlies, float64(snap.Ply+1))
	if snap.Err != nil {
		r.stats.IncCounter(stats.MetricReplayTruncated, 1)
		if tl.markReported() {
			r.logIllegal(id, game, snap.Err)
		}
	}
	return snap
}

// Timeline returns the cached timeline for id, creating one for game on
// a miss. game is ignored on a hit, so an id must always name the same
// game. Two callers missing at once may both build a timeline; the last
// one added wins.
func (r *Replayer) Timeline(id string, game *chess.Game) *Timeline {
	if tl, ok := r.cache.Get(id); ok {
		r.stats.IncCounter(stats.MetricTimelineHits, 1)
		return tl
	}
	r.stats.IncCounter(stats.MetricTimelineMisses, 1)

	tl := NewTimeline(game)
	r.cache.Add(id, tl)
	r.stats.SetGauge(stats.MetricTimelineCacheLen, int64(r.cache.Len()))
	return tl
}

// Forget drops the timeline of id, e.g. after the game is deleted.
func (r *Replayer) Forget(id string) {
	r.cache.Remove(id)
	r.stats.SetGauge(stats.MetricTimelineCacheLen, int64(r.cache.Len()))
}

// Len returns the number of cached timelines.
func (r *Replayer) Len() int {
	return r.cache.Len()
}

func (r *Replayer) logIllegal(id string, game *chess.Game, err error) {
	fields := []zap.Field{
		zap.String("game", id),
		zap.String("white", game.White()),
		zap.String("black", game.Black()),
		zap.Error(err),
	}
	var me *errors.MoveError
	if errors.As(err, &me) {
		fields = append(fields,
			zap.Int("ply", me.Ply),
			zap.String("san", me.SAN),
			zap.Stringer("kind", me.Kind),
		)
	}
	r.logger.Warn("illegal move, replay truncated", fields...)
}
