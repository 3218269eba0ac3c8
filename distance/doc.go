// Package distance provides bounded distance functions for numeric-like
// values.
//
// Every function returns a value in [0, max]: 0 means equal, max means the
// two values are as far apart as the caller cares to distinguish.
//
// # Categories
//
//   - PlainNumber: any Go integer or float kind (bool excluded)
//   - DateTime: time.Time, measured in Unix seconds
//   - Date: Date or time.Time, measured in ordinal days
//   - TimeDelta: time.Duration, measured in seconds
//   - ClockTime: TimeOfDay, measured in seconds since midnight
//
// # Usage
//
//	d := distance.Numbers(1, 2, 1)             // 1/3
//	d, ok := distance.Numeric(t1, t2, 0.3)     // ok=false: no shared category
//	ds, err := distance.Array(xs, ys, 1)       // batch version of Numbers
//
// Array runs on the batch kernels in internal/simd.
package distance
