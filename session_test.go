package deepdist

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepdist/cache"
	"github.com/hupe1980/deepdist/deephash"
	"github.com/hupe1980/deepdist/diff"
	"github.com/hupe1980/deepdist/testutil"
)

type countingHasher struct {
	inner *deephash.Hasher
	calls int
}

func (h *countingHasher) Hash(v any, c *cache.LengthCache) (cache.Hash, error) {
	h.calls++
	return h.inner.Hash(v, c)
}

type failingDiffer struct{ err error }

func (d failingDiffer) Diff(any, any, diff.Options) (diff.Report, error) {
	return nil, d.err
}

func roughDistance(t *testing.T, t1, t2 any, opts ...Option) float64 {
	t.Helper()
	s, err := New(t1, t2, opts...)
	require.NoError(t, err)
	d, err := s.RoughDistance(context.Background())
	require.NoError(t, err)
	return d
}

func TestRoughDistance(t *testing.T) {
	ten := func() []int { return []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9} }
	changed := ten()
	changed[1] = 2

	tests := []struct {
		name string
		t1   any
		t2   any
		want float64
	}{
		{"OneOfTenChanged", ten(), changed, 0.05},
		{"IdenticalNested", testutil.NewRNG(7).NestedValue(3, 3), testutil.NewRNG(7).NestedValue(3, 3), 0},
		{"Numbers", 10, 12, 2.0 / 22},
		{"EqualNumbers", 0, 0, 0},
		{"Durations", time.Second, 2 * time.Second, 1.0 / 3},
		{"TypeChangeClamped", 1, "a", 1},
		{"MapValueChanged", map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1, "b": 3}, 0.25},
		{"ItemAdded", []string{"a"}, []string{"a", "b"}, 1.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := roughDistance(t, tt.t1, tt.t2)
			assert.InDelta(t, tt.want, d, 1e-12)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 1.0)
		})
	}
}

func TestRoughDistanceIgnoreOrder(t *testing.T) {
	assert.Zero(t, roughDistance(t, []int{1, 2, 3}, []int{3, 2, 1}, WithIgnoreOrder(true)))
	assert.Positive(t, roughDistance(t, []int{1, 2, 3}, []int{3, 2, 1}))
}

func TestRoughDistanceNumericKindsAgreeAcrossOrderModes(t *testing.T) {
	t1, t2 := []any{1}, []any{int64(1)}

	ordered := roughDistance(t, t1, t2)
	unordered := roughDistance(t, t1, t2, WithIgnoreOrder(true))
	assert.Equal(t, 1.0, ordered)
	assert.Equal(t, ordered, unordered)
}

func TestRoughDistanceCycles(t *testing.T) {
	a := testutil.Cyclic()
	b := testutil.Cyclic()
	b["a"] = 2

	d := roughDistance(t, a, b)
	// One changed value over two rough lengths of 3.
	assert.InDelta(t, 1.0/6, d, 1e-12)
}

func TestDeltaView(t *testing.T) {
	report := map[string]any{
		"values_changed": map[string]any{"root[0]": map[string]any{"new_value": 5}},
		"_bookkeeping":   []int{1, 2, 3},
		"deep_distance":  0.5,
	}
	d := roughDistance(t, []int{1, 2}, []int{5, 2}, WithDeltaReport(report), WithDiffer(failingDiffer{errors.New("unused")}))
	assert.InDelta(t, 0.25, d, 1e-12)
}

func TestRoughDistanceNumericCutoff(t *testing.T) {
	assert.InDelta(t, 0.3, roughDistance(t, 3, -1, WithCutoff(0.3)), 1e-12)
}

func TestNewValidatesCutoff(t *testing.T) {
	for _, c := range []float64{0, -1} {
		_, err := New(1, 2, WithCutoff(c))
		assert.ErrorIs(t, err, ErrInvalidCutoff)
	}
}

func TestNewValidatesMathEpsilon(t *testing.T) {
	tests := []struct {
		name string
		eps  float64
		ok   bool
	}{
		{"Default", 0, true},
		{"Positive", 0.01, true},
		{"Negative", -0.5, false},
		{"NaN", math.NaN(), false},
		{"Inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(1, 2, WithMathEpsilon(tt.eps))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidMathEpsilon)
			}
		})
	}
}

func TestCachePurged(t *testing.T) {
	s, err := New([]int{1, 2}, []int{1, 3})
	require.NoError(t, err)
	s.DiscardCache()

	_, err = s.RoughDistance(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCachePurged)
	assert.ErrorIs(t, err, cache.ErrPurged)
	assert.Contains(t, err.Error(), "retain the cache")

	_, err = s.LengthOf([]int{1})
	assert.ErrorIs(t, err, ErrCachePurged)
}

func TestCachePurgedIdenticalValues(t *testing.T) {
	s, err := New([]int{1, 2}, []int{1, 2})
	require.NoError(t, err)
	s.DiscardCache()

	d, err := s.RoughDistance(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestLengthOfMemoizes(t *testing.T) {
	h := &countingHasher{inner: deephash.New()}
	metrics := &BasicMetricsCollector{}
	v := []any{1, "two", map[string]int{"x": 3}}

	s, err := New(v, v, WithHasher(h), WithMetricsCollector(metrics))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		n, err := s.LengthOf(v)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	}
	assert.Equal(t, 1, h.calls)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LengthHits)
	assert.Equal(t, int64(1), stats.LengthMisses)

	// Sub-values were recorded by the first hash.
	n, err := s.LengthOf(v[2])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, h.calls)
}

func TestLengthOfMemoizesValues(t *testing.T) {
	type record struct {
		A [64]int
		S string
	}
	h := &countingHasher{inner: deephash.New()}
	v := record{S: "x"}

	s, err := New(v, v, WithHasher(h))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		n, err := s.LengthOf(record{S: "x"})
		require.NoError(t, err)
		assert.Equal(t, 65, n)
	}
	assert.Equal(t, 1, h.calls)
}

func TestSharedLengthCache(t *testing.T) {
	c := cache.NewLengthCache()
	v := []int{1, 2, 3}

	s1, err := New(v, nil, WithLengthCache(c))
	require.NoError(t, err)
	_, err = s1.LengthOf(v)
	require.NoError(t, err)

	h := &countingHasher{inner: deephash.New()}
	s2, err := New(v, nil, WithLengthCache(c), WithHasher(h))
	require.NoError(t, err)
	n, err := s2.LengthOf(v)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, h.calls)
}

func TestDifferFailure(t *testing.T) {
	boom := errors.New("boom")
	s, err := New([]int{1}, []int{2}, WithDiffer(failingDiffer{boom}))
	require.NoError(t, err)

	_, err = s.RoughDistance(context.Background())
	assert.ErrorIs(t, err, boom)
	var ce *ErrCollaborator
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "diff", ce.Op)
}

func TestHashOptionsForwarded(t *testing.T) {
	s, err := New(nil, nil, WithHashOptions(deephash.IgnoreStringCase()))
	require.NoError(t, err)

	a, _, err := s.BuildHashTable([]any{"ABC"})
	require.NoError(t, err)
	b, _, err := s.BuildHashTable([]any{"abc"})
	require.NoError(t, err)
	for h := range a {
		assert.Contains(t, b, h)
	}
}

func TestRoughDistanceMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	roughDistance(t, 1, 2, WithMetricsCollector(metrics))
	roughDistance(t, []int{1}, []int{2}, WithMetricsCollector(metrics))

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.RoughCount)
	assert.Equal(t, int64(1), stats.RoughNumeric)
	assert.Zero(t, stats.RoughErrors)
}

func TestRoughDistanceCanceled(t *testing.T) {
	s, err := New(1, 2)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.RoughDistance(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
