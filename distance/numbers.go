package distance

import (
	"math"

	"github.com/hupe1980/deepdist/internal/conv"
)

// Numbers returns the distance between two numbers relative to their sum.
//
// Equal inputs are 0 before any arithmetic happens, so Numbers(0, 0, max) is 0.
// A zero divisor (a = -b) or a NaN quotient yields max.
func Numbers(a, b, max float64) float64 {
	if a == b {
		return 0
	}

	divisor := (a + b) / max
	if divisor == 0 {
		return max
	}

	d := math.Abs((a - b) / divisor)
	if math.IsNaN(d) || d > max {
		return max
	}
	return d
}

// NumberValues is Numbers for any two PlainNumber values. Mixed kinds are
// compared by value (1 and 1.0 are equal). ok is false if either side is not
// a PlainNumber.
func NumberValues(a, b any, max float64) (float64, bool) {
	if !isPlainNumber(a) || !isPlainNumber(b) {
		return 0, false
	}
	if equal, _ := conv.Equal(a, b); equal {
		return 0, true
	}
	fa, _ := conv.Float64(a)
	fb, _ := conv.Float64(b)
	return Numbers(fa, fb, max), true
}
