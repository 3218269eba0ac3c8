package conv

import (
	"math"
	"reflect"
)

// IsNumberKind reports whether k is an integer or floating point kind.
// Bool and complex kinds are not numbers here.
func IsNumberKind(k reflect.Kind) bool {
	return IsIntKind(k) || IsUintKind(k) || IsFloatKind(k)
}

// IsIntKind reports whether k is a signed integer kind.
func IsIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsUintKind reports whether k is an unsigned integer kind.
func IsUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloatKind reports whether k is a floating point kind.
func IsFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Float64 returns v as a float64. ok is false if v is not a number.
func Float64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case nil:
		return 0, false
	}
	return ValueFloat64(reflect.ValueOf(v))
}

// ValueFloat64 is Float64 for a reflect.Value. Named types with a numeric
// underlying kind are accepted.
func ValueFloat64(rv reflect.Value) (float64, bool) {
	switch k := rv.Kind(); {
	case IsIntKind(k):
		return float64(rv.Int()), true
	case IsUintKind(k):
		return float64(rv.Uint()), true
	case IsFloatKind(k):
		return rv.Float(), true
	}
	return 0, false
}

// Equal compares two numbers by value. Integers are compared exactly, so
// large int64 values that collapse to the same float64 are still different.
// ok is false if either side is not a number.
func Equal(a, b any) (equal, ok bool) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := ra.Kind(), rb.Kind()
	if !IsNumberKind(ka) || !IsNumberKind(kb) {
		return false, false
	}

	switch {
	case IsIntKind(ka) && IsIntKind(kb):
		return ra.Int() == rb.Int(), true
	case IsUintKind(ka) && IsUintKind(kb):
		return ra.Uint() == rb.Uint(), true
	case IsIntKind(ka) && IsUintKind(kb):
		return ra.Int() >= 0 && uint64(ra.Int()) == rb.Uint(), true
	case IsUintKind(ka) && IsIntKind(kb):
		return rb.Int() >= 0 && ra.Uint() == uint64(rb.Int()), true
	}

	fa, _ := ValueFloat64(ra)
	fb, _ := ValueFloat64(rb)
	return fa == fb, true
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
