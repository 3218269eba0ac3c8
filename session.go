package deepdist

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/deephash"
	"github.com/hupe1980/deepdist/diff"
	"github.com/hupe1980/deepdist/distance"
	"github.com/hupe1980/deepdist/size"
)

// Hasher computes content hashes and records every hashed value, with its
// rough length, in the given cache.
type Hasher interface {
	Hash(v any, c *cache.LengthCache) (cache.Hash, error)
}

// Differ produces a structural report of the differences between two values.
type Differ interface {
	Diff(t1, t2 any, opts diff.Options) (diff.Report, error)
}

// Session measures the distance between two values. The values are never
// modified. A Session is not safe for concurrent use.
type Session struct {
	t1, t2  any
	opts    options
	cache   *cache.LengthCache
	hasher  Hasher
	differ  Differ
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Session comparing t1 with t2.
func New(t1, t2 any, optFns ...Option) (*Session, error) {
	o := applyOptions(optFns)
	if math.IsNaN(o.cutoff) || math.IsInf(o.cutoff, 0) || o.cutoff <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCutoff, o.cutoff)
	}
	if math.IsNaN(o.epsilon) || math.IsInf(o.epsilon, 0) || o.epsilon < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMathEpsilon, o.epsilon)
	}

	s := &Session{
		t1:      t1,
		t2:      t2,
		opts:    o,
		cache:   o.lengthCache,
		hasher:  o.hasher,
		differ:  o.differ,
		logger:  o.logger.WithCutoff(o.cutoff),
		metrics: o.metricsCollector,
	}
	if s.cache == nil {
		s.cache = cache.NewLengthCache()
	}
	if s.hasher == nil {
		s.hasher = deephash.New(o.hashOptions...)
	}
	if s.differ == nil {
		var dopts []diff.Option
		if h, ok := s.hasher.(*deephash.Hasher); ok {
			dopts = append(dopts, diff.WithHasher(h))
		}
		s.differ = diff.New(dopts...)
	}
	return s, nil
}

// Cache returns the session's length cache.
func (s *Session) Cache() *cache.LengthCache {
	return s.cache
}

// DiscardCache releases the length cache. Every later call that needs a
// rough length fails with ErrCachePurged.
func (s *Session) DiscardCache() {
	s.cache.Discard()
}

// RoughDistance returns a score in [0, 1] for how different t1 and t2 are.
//
// Numeric values (numbers, times, dates, durations, times of day) are
// measured directly. Anything else is measured as the size of the
// structural report divided by the summed rough lengths of both values.
func (s *Session) RoughDistance(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()

	if d, ok := distance.Numeric(s.t1, s.t2, s.opts.cutoff); ok {
		s.metrics.RecordRoughDistance(true, time.Since(start), nil)
		s.logger.DebugContext(ctx, "numeric distance", "distance", d)
		return d, nil
	}

	d, n, err := s.structural()
	s.metrics.RecordRoughDistance(false, time.Since(start), err)
	s.logger.LogRoughDistance(ctx, d, n, err)
	return d, err
}

func (s *Session) structural() (float64, int, error) {
	report, err := s.report()
	if err != nil {
		return 0, 0, err
	}

	n := size.Of(report)
	if n == 0 {
		return 0, 0, nil
	}

	len1, err := s.LengthOf(s.t1)
	if err != nil {
		return 0, n, err
	}
	len2, err := s.LengthOf(s.t2)
	if err != nil {
		return 0, n, err
	}

	total := len1 + len2
	if total == 0 {
		return 1, n, nil
	}
	return math.Min(1, float64(n)/float64(total)), n, nil
}

func (s *Session) report() (any, error) {
	if s.opts.deltaView {
		return s.opts.deltaReport, nil
	}
	r, err := s.differ.Diff(s.t1, s.t2, diff.Options{
		IgnoreOrder:      s.opts.ignoreOrder,
		ReportRepetition: false,
	})
	if err != nil {
		return nil, &ErrCollaborator{Op: "diff", cause: translateError(err)}
	}
	return r, nil
}

// LengthOf returns the memoized rough length of v, hashing v on a miss.
func (s *Session) LengthOf(v any) (int, error) {
	_, e, ok, err := s.cache.Lookup(v)
	if err != nil {
		return 0, translateError(err)
	}
	if ok {
		s.metrics.RecordLengthLookup(true)
		return e.Length, nil
	}

	h, err := s.hash(v)
	if err != nil {
		return 0, err
	}
	e, ok, err = s.cache.Get(h)
	if err != nil {
		return 0, translateError(err)
	}
	s.metrics.RecordLengthLookup(false)
	if !ok {
		return 0, &ErrCollaborator{Op: "hash", cause: fmt.Errorf("no cache entry recorded for %s", h)}
	}
	return e.Length, nil
}

func (s *Session) hash(v any) (cache.Hash, error) {
	if s.cache.Discarded() {
		return 0, translateError(cache.ErrPurged)
	}
	h, err := s.hasher.Hash(v, s.cache)
	if err != nil {
		err = translateError(err)
		if s.cache.Discarded() {
			return 0, err
		}
		return 0, &ErrCollaborator{Op: "hash", cause: err}
	}
	return h, nil
}
