package deepdist

import (
	"log/slog"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/deephash"
)

const (
	// DefaultCutoff is the ceiling used by numeric distances.
	DefaultCutoff = 1.0
	// DefaultMathEpsilon is the distance recorded for pairs a comparator
	// declares close.
	DefaultMathEpsilon = 1e-6
)

type options struct {
	cutoff           float64
	comparator       Comparator
	epsilon          float64
	deltaReport      any
	deltaView        bool
	ignoreOrder      bool
	differ           Differ
	hasher           Hasher
	hashOptions      []deephash.Option
	lengthCache      *cache.LengthCache
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Session.
type Option func(*options)

// WithCutoff sets the ceiling for numeric distances. It must be positive.
func WithCutoff(cutoff float64) Option {
	return func(o *options) {
		o.cutoff = cutoff
	}
}

// WithComparator configures the comparator used by PrecalculateByComparator.
func WithComparator(c Comparator) Option {
	return func(o *options) {
		o.comparator = c
	}
}

// WithMathEpsilon sets the distance recorded for close pairs. 0 selects
// DefaultMathEpsilon; negative values are rejected by New.
func WithMathEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithDeltaReport puts the session in delta view: report is measured
// directly instead of diffing t1 against t2.
//
// Example:
//
//	s, _ := deepdist.New(t1, t2, deepdist.WithDeltaReport(report))
//	d, _ := s.RoughDistance(ctx)
func WithDeltaReport(report any) Option {
	return func(o *options) {
		o.deltaReport = report
		o.deltaView = true
	}
}

// WithIgnoreOrder compares slices as multisets when the session asks the
// differ for a report.
func WithIgnoreOrder(ignore bool) Option {
	return func(o *options) {
		o.ignoreOrder = ignore
	}
}

// WithDiffer replaces the default structural differ.
func WithDiffer(d Differ) Option {
	return func(o *options) {
		o.differ = d
	}
}

// WithHasher replaces the default content hasher.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithHashOptions forwards options to the default deephash hasher.
// It has no effect when WithHasher is used.
func WithHashOptions(opts ...deephash.Option) Option {
	return func(o *options) {
		o.hashOptions = append(o.hashOptions, opts...)
	}
}

// WithLengthCache shares a length cache between sessions.
// If nil is passed, the session creates its own.
func WithLengthCache(c *cache.LengthCache) Option {
	return func(o *options) {
		o.lengthCache = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &deepdist.BasicMetricsCollector{}
//	s, _ := deepdist.New(t1, t2, deepdist.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Rough: %d, Avg latency: %dns\n", stats.RoughCount, stats.RoughAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := deepdist.NewJSONLogger(slog.LevelDebug)
//	s, _ := deepdist.New(t1, t2, deepdist.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		cutoff:           DefaultCutoff,
		epsilon:          DefaultMathEpsilon,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
