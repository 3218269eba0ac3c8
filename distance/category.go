package distance

import (
	"fmt"
	"reflect"
	"time"

	"github.com/hupe1980/deepdist/internal/conv"
)

// Category is a numeric-like family of values that share a distance function.
type Category int

const (
	None Category = iota
	PlainNumber
	DateTime
	CalendarDate
	TimeDelta
	ClockTime
)

func (c Category) String() string {
	switch c {
	case None:
		return "None"
	case PlainNumber:
		return "PlainNumber"
	case DateTime:
		return "DateTime"
	case CalendarDate:
		return "Date"
	case TimeDelta:
		return "TimeDelta"
	case ClockTime:
		return "ClockTime"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// Func is a distance function over two members of one category.
// The caller guarantees both arguments belong to the category.
type Func func(a, b any, max float64) float64

var durationType = reflect.TypeOf(time.Duration(0))

type entry struct {
	category Category
	member   func(v any) bool
	fn       Func
}

// precedence is the order categories are tested in. DateTime must come
// before Date: a time.Time is also a date.
var precedence = []entry{
	{PlainNumber, isPlainNumber, func(a, b any, max float64) float64 {
		d, _ := NumberValues(a, b, max)
		return d
	}},
	{DateTime, isDateTime, func(a, b any, max float64) float64 {
		return DateTimes(a.(time.Time), b.(time.Time), max)
	}},
	{CalendarDate, isDate, func(a, b any, max float64) float64 {
		return Dates(asDate(a), asDate(b), max)
	}},
	{TimeDelta, isTimeDelta, func(a, b any, max float64) float64 {
		return TimeDeltas(a.(time.Duration), b.(time.Duration), max)
	}},
	{ClockTime, isClockTime, func(a, b any, max float64) float64 {
		return ClockTimes(a.(TimeOfDay), b.(TimeOfDay), max)
	}},
}

// Numeric returns the distance between a and b using the first category
// both belong to. ok is false when they share none; that is a signal to fall
// back to a structural comparison, not an error.
func Numeric(a, b any, max float64) (float64, bool) {
	for _, e := range precedence {
		if e.member(a) && e.member(b) {
			return e.fn(a, b, max), true
		}
	}
	return 0, false
}

// Categorize returns the first category v belongs to, or None.
func Categorize(v any) Category {
	for _, e := range precedence {
		if e.member(v) {
			return e.category
		}
	}
	return None
}

// Provider returns the distance function for the given category.
func Provider(c Category) (Func, error) {
	for _, e := range precedence {
		if e.category == c {
			return e.fn, nil
		}
	}
	return nil, fmt.Errorf("unsupported category: %v", c)
}

// isPlainNumber excludes time.Duration; durations are measured in seconds
// as TimeDelta, never as raw nanoseconds.
func isPlainNumber(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return conv.IsNumberKind(rv.Kind()) && rv.Type() != durationType
}

func isDateTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func isDate(v any) bool {
	switch v.(type) {
	case Date, time.Time:
		return true
	}
	return false
}

func asDate(v any) Date {
	if t, ok := v.(time.Time); ok {
		return DateOf(t)
	}
	return v.(Date)
}

func isTimeDelta(v any) bool {
	_, ok := v.(time.Duration)
	return ok
}

func isClockTime(v any) bool {
	_, ok := v.(TimeOfDay)
	return ok
}
