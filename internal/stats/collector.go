// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout pgnview.
const (
	// Replay metrics.
	MetricReplays          = "pgnview_replays_total"
	MetricReplayTruncated  = "pgnview_replay_truncated_total"
	MetricReplayPlies      = "pgnview_replay_plies"
	MetricTimelineHits     = "pgnview_timeline_cache_hits_total"
	MetricTimelineMisses   = "pgnview_timeline_cache_misses_total"
	MetricTimelineCacheLen = "pgnview_timeline_cache_size"

	// Library metrics.
	MetricGamesAdded    = "pgnview_games_added_total"
	MetricGamesRejected = "pgnview_games_rejected_total"
	MetricGamesStored   = "pgnview_games_stored"
)

// Help returns the description exported with a metric.
func Help(name string) string {
	if h, ok := helpText[name]; ok {
		return h
	}
	return name
}

var helpText = map[string]string{
	MetricReplays:          "Board snapshots computed by replaying a game.",
	MetricReplayTruncated:  "Replays stopped early by an illegal move.",
	MetricReplayPlies:      "Plies applied per replay.",
	MetricTimelineHits:     "Timeline lookups served from the cache.",
	MetricTimelineMisses:   "Timeline lookups that built a new timeline.",
	MetricTimelineCacheLen: "Timelines currently cached.",
	MetricGamesAdded:       "Games accepted into the library.",
	MetricGamesRejected:    "Submissions rejected by the library.",
	MetricGamesStored:      "Games currently stored.",
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
