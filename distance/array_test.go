package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepdist/testutil"
)

func TestArray(t *testing.T) {
	a := []float64{1, 0, 5, 7, 1, -1}
	b := []float64{2, 0, -5, 7, 100, -2}

	got, err := Array(a, b, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 0, 1, 0, 99.0 / 101, 1.0 / 3}, got, 1e-12)
}

func TestArrayMatchesNumbers(t *testing.T) {
	rng := testutil.NewRNG(42)

	for _, max := range []float64{1, 0.3, 2} {
		a, b := rng.NumberPairs(4099, 0.15, 0.15)
		got, err := Array(a, b, max)
		require.NoError(t, err)

		for i := range a {
			assert.InDelta(t, Numbers(a[i], b[i], max), got[i], 1e-12, "lane %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestArrayLengthMismatch(t *testing.T) {
	_, err := Array([]float64{1}, []float64{1, 2}, 1)
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 1, lm.Left)
	assert.Equal(t, 2, lm.Right)

	err = ArrayInto(make([]float64, 3), []float64{1, 2}, []float64{1, 2}, 1)
	assert.ErrorAs(t, err, &lm)
}

func TestArrayInto(t *testing.T) {
	dst := make([]float64, 2)
	require.NoError(t, ArrayInto(dst, []float64{0, 3}, []float64{0, 1}, 1))
	assert.Equal(t, []float64{0, 0.5}, dst)
}

func BenchmarkArray(b *testing.B) {
	rng := testutil.NewRNG(1)
	x, y := rng.NumberPairs(1<<14, 0.1, 0.1)
	dst := make([]float64, len(x))
	b.SetBytes(int64(len(x) * 8 * 2))
	b.ResetTimer()
	for b.Loop() {
		_ = ArrayInto(dst, x, y, 1)
	}
}
