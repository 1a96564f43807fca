package stats

// Noop is a collector that discards all metrics.
type Noop struct{}

var _ Collector = (*Noop)(nil)

// NewNoop creates a new no-op collector.
func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) IncCounter(string, int64)         {}
func (*Noop) SetGauge(string, int64)           {}
func (*Noop) ObserveHistogram(string, float64) {}
