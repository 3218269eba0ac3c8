// Package simd provides batch float64 kernels used by vectorized distance
// computation.
//
// # Kernel Sets
//
// All kernels are plain Go. Runtime CPU feature detection (AVX2, AVX-512 on
// x86-64, NEON on ARM64) picks the kernel set once at init: CPUs with wide
// vector units get 4-way unrolled loops the compiler can keep in registers,
// everything else the straight generic loops. Set DEEPDIST_SIMD=generic or
// DEEPDIST_SIMD=unrolled to force a set.
//
// # Operations
//
//   - Elementwise: Sub, AddDiv
//   - Masked: DivFill, ZeroWhereEqual
//   - Bounds: AbsClamp
//
// All kernels write into dst and assume every input has len(dst) elements
// (caller's responsibility).
package simd
