// Package testutil provides testing utilities for deepdist.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG with helpers for generating numeric
// batches that hit the degenerate cases of the distance formula (equal
// operands, operands summing to zero), and for generating nested values.
//
// # Numeric Batches
//
//	rng := testutil.NewRNG(seed)
//	a, b := rng.NumberPairs(1024, 0.2, 0.1) // 20% equal lanes, 10% zero-sum lanes
//
// # Nested Values
//
//	v := rng.NestedValue(3, 4) // maps and slices, depth 3, fan-out 4
package testutil
