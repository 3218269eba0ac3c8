package simd

import "math"

var (
	subImpl            = subGeneric
	addDivImpl         = addDivGeneric
	divFillImpl        = divFillGeneric
	zeroWhereEqualImpl = zeroWhereEqualGeneric
	absClampImpl       = absClampGeneric
)

func selectKernels(k KernelSet) {
	if k == Generic {
		subImpl = subGeneric
		addDivImpl = addDivGeneric
		divFillImpl = divFillGeneric
		zeroWhereEqualImpl = zeroWhereEqualGeneric
		absClampImpl = absClampGeneric
		return
	}

	subImpl = subUnrolled
	addDivImpl = addDivUnrolled
	divFillImpl = divFillUnrolled
	zeroWhereEqualImpl = zeroWhereEqualGeneric
	absClampImpl = absClampUnrolled
}

// Sub computes dst[i] = a[i] - b[i].
//
// SAFETY: assumes len(a) >= len(dst) and len(b) >= len(dst).
func Sub(dst, a, b []float64) {
	subImpl(dst, a, b)
}

// AddDiv computes dst[i] = (a[i] + b[i]) / d.
func AddDiv(dst, a, b []float64, d float64) {
	addDivImpl(dst, a, b, d)
}

// DivFill computes dst[i] = num[i] / den[i], writing fill wherever den[i] is zero.
func DivFill(dst, num, den []float64, fill float64) {
	divFillImpl(dst, num, den, fill)
}

// ZeroWhereEqual sets dst[i] = 0 wherever a[i] == b[i].
func ZeroWhereEqual(dst, a, b []float64) {
	zeroWhereEqualImpl(dst, a, b)
}

// AbsClamp replaces dst[i] with |dst[i]| clamped to [lo, hi].
// NaN lanes resolve to hi.
func AbsClamp(dst []float64, lo, hi float64) {
	absClampImpl(dst, lo, hi)
}

func subGeneric(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func addDivGeneric(dst, a, b []float64, d float64) {
	for i := range dst {
		dst[i] = (a[i] + b[i]) / d
	}
}

func divFillGeneric(dst, num, den []float64, fill float64) {
	for i := range dst {
		if den[i] == 0 {
			dst[i] = fill
			continue
		}
		dst[i] = num[i] / den[i]
	}
}

func zeroWhereEqualGeneric(dst, a, b []float64) {
	for i := range dst {
		if a[i] == b[i] {
			dst[i] = 0
		}
	}
}

func absClampGeneric(dst []float64, lo, hi float64) {
	for i := range dst {
		dst[i] = absClamp1(dst[i], lo, hi)
	}
}

func absClamp1(v, lo, hi float64) float64 {
	v = math.Abs(v)
	switch {
	case math.IsNaN(v):
		return hi
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
