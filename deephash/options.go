package deephash

type options struct {
	ignoreStringCase         bool
	ignoreNumericTypeChanges bool
	significantDigits        int
}

// Option configures a Hasher.
type Option func(*options)

// IgnoreStringCase hashes strings case-insensitively.
func IgnoreStringCase() Option {
	return func(o *options) {
		o.ignoreStringCase = true
	}
}

// IgnoreNumericTypeChanges hashes numbers by value only, so int 1 and
// float64 1.0 collide.
func IgnoreNumericTypeChanges() Option {
	return func(o *options) {
		o.ignoreNumericTypeChanges = true
	}
}

// SignificantDigits rounds floats to n digits after the decimal point before
// hashing. n < 0 disables rounding (the default).
func SignificantDigits(n int) Option {
	return func(o *options) {
		o.significantDigits = n
	}
}
