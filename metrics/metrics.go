// Package metrics exports parser memoization statistics to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dhamidi/descent/parser"
)

// Collector counts parser events. It implements parser.Observer and can
// be shared by several sources.
type Collector struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	failures prometheus.Counter
}

var _ parser.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers its counters with reg. A
// nil reg leaves them unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "descent_memo_hits_total",
			Help: "Matches answered from the memo table",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "descent_memo_misses_total",
			Help: "Matches that had to be computed",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "descent_match_failures_total",
			Help: "Computed matches that failed",
		}),
	}
	if reg == nil {
		return c, nil
	}
	for _, m := range []prometheus.Collector{c.hits, c.misses, c.failures} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

func (c *Collector) Observe(e parser.Event) {
	switch e.Kind {
	case parser.EventMemoHit:
		c.hits.Inc()
	case parser.EventMemoMiss:
		c.misses.Inc()
	case parser.EventFailure:
		c.failures.Inc()
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	MemoHits   float64
	MemoMisses float64
	Failures   float64
}

// HitRate returns the share of matches answered from the memo table.
func (s Snapshot) HitRate() float64 {
	total := s.MemoHits + s.MemoMisses
	if total == 0 {
		return 0
	}
	return s.MemoHits / total
}

func (s Snapshot) String() string {
	return fmt.Sprintf("memo hits: %.0f, memo misses: %.0f, failures: %.0f, hit rate: %.1f%%",
		s.MemoHits, s.MemoMisses, s.Failures, 100*s.HitRate())
}

func (c *Collector) Snapshot() (Snapshot, error) {
	var s Snapshot
	for _, field := range []struct {
		counter prometheus.Counter
		dst     *float64
	}{
		{c.hits, &s.MemoHits},
		{c.misses, &s.MemoMisses},
		{c.failures, &s.Failures},
	} {
		var m dto.Metric
		if err := field.counter.Write(&m); err != nil {
			return Snapshot{}, fmt.Errorf("read counter: %w", err)
		}
		*field.dst = m.GetCounter().GetValue()
	}
	return s, nil
}
