package distance

import (
	"fmt"

	"github.com/hupe1980/deepdist/internal/pool"
	"github.com/hupe1980/deepdist/internal/simd"
)

// ErrLengthMismatch indicates two batches of different lengths.
type ErrLengthMismatch struct {
	Left  int
	Right int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d vs %d", e.Left, e.Right)
}

// Array computes Numbers(a[i], b[i], max) for every i in one batched pass.
func Array(a, b []float64, max float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, &ErrLengthMismatch{Left: len(a), Right: len(b)}
	}
	dst := make([]float64, len(a))
	withScratch(dst, a, b, max)
	return dst, nil
}

// ArrayInto is Array writing into dst, which must have the length of a and b.
func ArrayInto(dst, a, b []float64, max float64) error {
	if len(a) != len(b) {
		return &ErrLengthMismatch{Left: len(a), Right: len(b)}
	}
	if len(dst) != len(a) {
		return &ErrLengthMismatch{Left: len(dst), Right: len(a)}
	}
	withScratch(dst, a, b, max)
	return nil
}

func withScratch(dst, a, b []float64, max float64) {
	s := pool.Get(len(a))
	arrayInto(dst, a, b, max, s.Buf)
	pool.Put(s)
}

// arrayInto mirrors Numbers lane by lane: divide with max filled in where the
// divisor is zero, force equal operands to 0, then bound to [0, max].
func arrayInto(dst, a, b []float64, max float64, scratch []float64) {
	simd.Sub(dst, a, b)
	simd.AddDiv(scratch, a, b, max)
	simd.DivFill(dst, dst, scratch, max)
	simd.ZeroWhereEqual(dst, a, b)
	simd.AbsClamp(dst, 0, max)
}
