package deepdist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems. The
// prommetrics package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordRoughDistance is called after each rough distance computation.
	// numeric reports whether the numeric short-circuit answered it.
	RecordRoughDistance(numeric bool, duration time.Duration, err error)

	// RecordPrecompute is called after each pairwise precomputation.
	// method is "comparator" or "numeric", pairs the number of table
	// entries and declined the number of declined pairs.
	RecordPrecompute(method string, pairs, declined int, duration time.Duration)

	// RecordLengthLookup is called for every rough length lookup.
	RecordLengthLookup(hit bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRoughDistance(bool, time.Duration, error)   {}
func (NoopMetricsCollector) RecordPrecompute(string, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordLengthLookup(bool)                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RoughCount         atomic.Int64
	RoughNumeric       atomic.Int64
	RoughErrors        atomic.Int64
	RoughTotalNanos    atomic.Int64
	PrecomputeCount    atomic.Int64
	PrecomputePairs    atomic.Int64
	PrecomputeDeclined atomic.Int64
	LengthHits         atomic.Int64
	LengthMisses       atomic.Int64
}

// RecordRoughDistance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRoughDistance(numeric bool, duration time.Duration, err error) {
	b.RoughCount.Add(1)
	b.RoughTotalNanos.Add(duration.Nanoseconds())
	if numeric {
		b.RoughNumeric.Add(1)
	}
	if err != nil {
		b.RoughErrors.Add(1)
	}
}

// RecordPrecompute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrecompute(_ string, pairs, declined int, _ time.Duration) {
	b.PrecomputeCount.Add(1)
	b.PrecomputePairs.Add(int64(pairs))
	b.PrecomputeDeclined.Add(int64(declined))
}

// RecordLengthLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLengthLookup(hit bool) {
	if hit {
		b.LengthHits.Add(1)
	} else {
		b.LengthMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RoughCount:         b.RoughCount.Load(),
		RoughNumeric:       b.RoughNumeric.Load(),
		RoughErrors:        b.RoughErrors.Load(),
		RoughAvgNanos:      b.getAvgRoughNanos(),
		PrecomputeCount:    b.PrecomputeCount.Load(),
		PrecomputePairs:    b.PrecomputePairs.Load(),
		PrecomputeDeclined: b.PrecomputeDeclined.Load(),
		LengthHits:         b.LengthHits.Load(),
		LengthMisses:       b.LengthMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRoughNanos() int64 {
	count := b.RoughCount.Load()
	if count == 0 {
		return 0
	}
	return b.RoughTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RoughCount         int64
	RoughNumeric       int64
	RoughErrors        int64
	RoughAvgNanos      int64
	PrecomputeCount    int64
	PrecomputePairs    int64
	PrecomputeDeclined int64
	LengthHits         int64
	LengthMisses       int64
}
