package testutil

import (
	"math/rand"
	"strconv"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*(maxVal-minVal)
	}
}

// NumberPairs returns two batches of n numbers in [-1000, 1000).
// A fraction equalRate of the lanes holds equal operands and a fraction
// zeroSumRate holds operands that cancel out (a = -b), including 0/0 lanes.
func (r *RNG) NumberPairs(n int, equalRate, zeroSumRate float64) (a, b []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a = make([]float64, n)
	b = make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(r.rand.Intn(2000) - 1000)
		if r.rand.Intn(4) == 0 {
			x += r.rand.Float64()
		}
		p := r.rand.Float64()
		switch {
		case p < equalRate:
			a[i], b[i] = x, x
		case p < equalRate+zeroSumRate:
			a[i], b[i] = x, -x
		default:
			a[i], b[i] = x, float64(r.rand.Intn(2000)-1000)
		}
	}
	return a, b
}

// Ints returns n random ints in [lo, hi).
func (r *RNG) Ints(n, lo, hi int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.rand.Intn(hi-lo)
	}
	return out
}

// NestedValue builds a tree of map[string]any and []any with the given depth
// and fan-out. Leaves are ints, float64s and strings.
func (r *RNG) NestedValue(depth, fanout int) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nestedLocked(depth, fanout)
}

func (r *RNG) nestedLocked(depth, fanout int) any {
	if depth <= 0 {
		switch r.rand.Intn(3) {
		case 0:
			return r.rand.Intn(100)
		case 1:
			return r.rand.Float64()
		default:
			return "s" + strconv.Itoa(r.rand.Intn(100))
		}
	}

	if r.rand.Intn(2) == 0 {
		m := make(map[string]any, fanout)
		for i := 0; i < fanout; i++ {
			m["k"+strconv.Itoa(i)] = r.nestedLocked(depth-1, fanout)
		}
		return m
	}

	s := make([]any, fanout)
	for i := range s {
		s[i] = r.nestedLocked(depth-1, fanout)
	}
	return s
}

// Cyclic returns a map that contains itself under "self" and a slice that
// contains the map, so both map and slice sit on a cycle.
func Cyclic() map[string]any {
	m := map[string]any{"a": 1, "b": "two"}
	s := []any{3, m}
	m["self"] = m
	m["list"] = s
	return m
}
