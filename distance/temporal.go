package distance

import (
	"fmt"
	"time"
)

// unixEpochOrdinal is the ordinal of 1970-01-01 where 0001-01-01 is day 1.
const unixEpochOrdinal = 719163

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Ordinal returns the proleptic Gregorian ordinal of d, 0001-01-01 being 1.
// Out-of-range fields are normalized the way time.Date does.
func (d Date) Ordinal() int {
	secs := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix()
	days := secs / 86400
	if secs%86400 != 0 && secs < 0 {
		days--
	}
	return int(days) + unixEpochOrdinal
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// TimeOfDayOf returns the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s, Nanosecond: t.Nanosecond()}
}

// Seconds returns whole seconds since midnight. Sub-second precision is not
// part of the distance.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%09d", t.Hour, t.Minute, t.Second, t.Nanosecond)
}

// DateTimes measures two instants in Unix seconds.
func DateTimes(a, b time.Time, max float64) float64 {
	if a.Equal(b) {
		return 0
	}
	return Numbers(unixSeconds(a), unixSeconds(b), max)
}

// Dates measures two dates in ordinal days.
func Dates(a, b Date, max float64) float64 {
	return Numbers(float64(a.Ordinal()), float64(b.Ordinal()), max)
}

// TimeDeltas measures two durations in seconds.
func TimeDeltas(a, b time.Duration, max float64) float64 {
	if a == b {
		return 0
	}
	return Numbers(a.Seconds(), b.Seconds(), max)
}

// ClockTimes measures two times of day in seconds since midnight.
func ClockTimes(a, b TimeOfDay, max float64) float64 {
	if a == b {
		return 0
	}
	return Numbers(float64(a.Seconds()), float64(b.Seconds()), max)
}

// unixSeconds avoids UnixNano, which overflows outside 1678..2262.
func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
