package prometheus

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/lgbarn/pgnview-go/internal/stats"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestNew_DefaultRegistry(t *testing.T) {
	if c := New(nil); c.registry != prometheus.DefaultRegisterer {
		t.Error("New(nil) should use the default registerer")
	}
}

func TestCollector_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricReplays, 5)
	c.IncCounter(stats.MetricReplays, 3)
	c.SetGauge(stats.MetricGamesStored, 42)
	for _, plies := range []float64{0, 12, 45} {
		c.ObserveHistogram(stats.MetricReplayPlies, plies)
	}

	families := gather(t, reg)

	replays := families[stats.MetricReplays]
	if replays == nil {
		t.Fatalf("%s not registered", stats.MetricReplays)
	}
	if got := replays.GetMetric()[0].GetCounter().GetValue(); got != 8 {
		t.Errorf("counter = %v, want 8", got)
	}
	if got := replays.GetHelp(); got != stats.Help(stats.MetricReplays) {
		t.Errorf("help = %q", got)
	}

	if got := families[stats.MetricGamesStored].GetMetric()[0].GetGauge().GetValue(); got != 42 {
		t.Errorf("gauge = %v, want 42", got)
	}

	h := families[stats.MetricReplayPlies].GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 3 || h.GetSampleSum() != 57 {
		t.Errorf("histogram count/sum = %d/%v, want 3/57", h.GetSampleCount(), h.GetSampleSum())
	}
	if got := len(h.GetBucket()); got != len(plyBuckets) {
		t.Errorf("histogram has %d buckets, want %d", got, len(plyBuckets))
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IncCounter(stats.MetricTimelineHits, 1)
				c.SetGauge(stats.MetricTimelineCacheLen, int64(j))
				c.ObserveHistogram(stats.MetricReplayPlies, float64(j))
			}
		}()
	}
	wg.Wait()

	families := gather(t, reg)
	if got := families[stats.MetricTimelineHits].GetMetric()[0].GetCounter().GetValue(); got != 1000 {
		t.Errorf("counter = %v, want 1000", got)
	}
	if got := families[stats.MetricReplayPlies].GetMetric()[0].GetHistogram().GetSampleCount(); got != 1000 {
		t.Errorf("histogram count = %v, want 1000", got)
	}
}

func TestCollector_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: stats.MetricGamesAdded,
		Help: "registered elsewhere",
	})
	reg.MustRegister(existing)
	existing.Add(100)

	New(reg).IncCounter(stats.MetricGamesAdded, 5)

	families := gather(t, reg)
	if got := families[stats.MetricGamesAdded].GetMetric()[0].GetCounter().GetValue(); got != 105 {
		t.Errorf("counter = %v, want 105", got)
	}
}
