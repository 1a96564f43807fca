// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lgbarn/pgnview-go/internal/stats"
)

// plyBuckets covers openings through long endgames.
var plyBuckets = prometheus.ExponentialBuckets(1, 2, 10)

// Collector implements stats.Collector using Prometheus metrics. Metrics
// are created and registered on first use.
type Collector struct {
	registry prometheus.Registerer

	mu      sync.RWMutex
	metrics map[string]prometheus.Collector
}

var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry: registry,
		metrics:  make(map[string]prometheus.Collector),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	counter := getOrCreate(c, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: stats.Help(name)})
	})
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	gauge := getOrCreate(c, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: stats.Help(name)})
	})
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	histogram := getOrCreate(c, name, func() prometheus.Histogram {
		buckets := prometheus.DefBuckets
		if name == stats.MetricReplayPlies {
			buckets = plyBuckets
		}
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    stats.Help(name),
			Buckets: buckets,
		})
	})
	histogram.Observe(value)
}

// getOrCreate returns the metric registered under name, creating and
// registering it when absent. A metric already registered elsewhere under
// the same name is adopted.
func getOrCreate[T prometheus.Collector](c *Collector, name string, create func() T) T {
	c.mu.RLock()
	existing, ok := c.metrics[name].(T)
	c.mu.RUnlock()
	if ok {
		return existing
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.metrics[name].(T); ok {
		return existing
	}

	metric := create()
	if err := c.registry.Register(metric); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if adopted, ok := are.ExistingCollector.(T); ok {
				metric = adopted
			}
		}
	}
	c.metrics[name] = metric
	return metric
}
