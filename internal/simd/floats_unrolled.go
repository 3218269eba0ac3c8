package simd

// 4-way unrolled kernels. Bounds are hoisted once per block so the compiler
// drops the per-lane checks.

func subUnrolled(dst, a, b []float64) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d, x, y := dst[i:i+4:i+4], a[i:i+4:i+4], b[i:i+4:i+4]
		d[0] = x[0] - y[0]
		d[1] = x[1] - y[1]
		d[2] = x[2] - y[2]
		d[3] = x[3] - y[3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

func addDivUnrolled(dst, a, b []float64, div float64) {
	n := len(dst)
	a, b = a[:n], b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d, x, y := dst[i:i+4:i+4], a[i:i+4:i+4], b[i:i+4:i+4]
		d[0] = (x[0] + y[0]) / div
		d[1] = (x[1] + y[1]) / div
		d[2] = (x[2] + y[2]) / div
		d[3] = (x[3] + y[3]) / div
	}
	for ; i < n; i++ {
		dst[i] = (a[i] + b[i]) / div
	}
}

func divFillUnrolled(dst, num, den []float64, fill float64) {
	n := len(dst)
	num, den = num[:n], den[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		d, x, y := dst[i:i+4:i+4], num[i:i+4:i+4], den[i:i+4:i+4]
		d[0] = divOr(x[0], y[0], fill)
		d[1] = divOr(x[1], y[1], fill)
		d[2] = divOr(x[2], y[2], fill)
		d[3] = divOr(x[3], y[3], fill)
	}
	for ; i < n; i++ {
		dst[i] = divOr(num[i], den[i], fill)
	}
}

func divOr(x, y, fill float64) float64 {
	if y == 0 {
		return fill
	}
	return x / y
}

func absClampUnrolled(dst []float64, lo, hi float64) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		d := dst[i : i+4 : i+4]
		d[0] = absClamp1(d[0], lo, hi)
		d[1] = absClamp1(d[1], lo, hi)
		d[2] = absClamp1(d[2], lo, hi)
		d[3] = absClamp1(d[3], lo, hi)
	}
	for ; i < n; i++ {
		dst[i] = absClamp1(dst[i], lo, hi)
	}
}
