// Package prommetrics implements deepdist.MetricsCollector on top of
// Prometheus.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/deepdist"
)

var _ deepdist.MetricsCollector = (*Collector)(nil)

// Collector records session metrics as Prometheus series.
type Collector struct {
	roughLatency *prometheus.HistogramVec
	pairs        *prometheus.CounterVec
	declined     prometheus.Counter
	precompute   *prometheus.HistogramVec
	lengths      *prometheus.CounterVec
}

// New creates a Collector and registers its series with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		roughLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rough_distance_seconds",
			Help:      "Latency of rough distance computations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"path", "status"}),
		pairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precomputed_pairs_total",
			Help:      "Pair distances written by precomputation",
		}, []string{"method"}),
		declined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "declined_pairs_total",
			Help:      "Pairs the comparator declined to judge",
		}),
		precompute: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "precompute_seconds",
			Help:      "Latency of pairwise precomputation",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"method"}),
		lengths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "length_lookups_total",
			Help:      "Rough length lookups by cache result",
		}, []string{"result"}),
	}

	for _, col := range []prometheus.Collector{c.roughLatency, c.pairs, c.declined, c.precompute, c.lengths} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordRoughDistance implements deepdist.MetricsCollector.
func (c *Collector) RecordRoughDistance(numeric bool, d time.Duration, err error) {
	path := "structural"
	if numeric {
		path = "numeric"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.roughLatency.WithLabelValues(path, status).Observe(d.Seconds())
}

// RecordPrecompute implements deepdist.MetricsCollector.
func (c *Collector) RecordPrecompute(method string, pairs, declined int, d time.Duration) {
	c.pairs.WithLabelValues(method).Add(float64(pairs))
	c.declined.Add(float64(declined))
	c.precompute.WithLabelValues(method).Observe(d.Seconds())
}

// RecordLengthLookup implements deepdist.MetricsCollector.
func (c *Collector) RecordLengthLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lengths.WithLabelValues(result).Inc()
}
