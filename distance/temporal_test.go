package distance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOrdinal(t *testing.T) {
	tests := []struct {
		date Date
		want int
	}{
		{Date{1, time.January, 1}, 1},
		{Date{1, time.January, 2}, 2},
		{Date{1970, time.January, 1}, 719163},
		{Date{2000, time.March, 1}, 730180},
		{Date{2024, time.February, 30}, Date{2024, time.March, 1}.Ordinal()},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Ordinal())
		})
	}
}

func TestDateTimes(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Zero(t, DateTimes(base, base.In(time.FixedZone("X", 3600)), 1))

	later := base.Add(time.Hour)
	want := Numbers(unixSeconds(base), unixSeconds(later), 1)
	assert.Equal(t, want, DateTimes(base, later, 1))
	assert.Greater(t, want, 0.0)

	// Equal-magnitude instants on opposite sides of the epoch sum to zero.
	pre := time.Unix(-100, 0)
	post := time.Unix(100, 0)
	assert.Equal(t, 1.0, DateTimes(pre, post, 1))
}

func TestDates(t *testing.T) {
	a := Date{2024, time.January, 1}
	assert.Zero(t, Dates(a, a, 1))

	b := Date{2024, time.January, 2}
	want := Numbers(float64(a.Ordinal()), float64(b.Ordinal()), 1)
	assert.InDelta(t, want, Dates(a, b, 1), 1e-15)
}

func TestTimeDeltas(t *testing.T) {
	assert.Zero(t, TimeDeltas(time.Second, time.Second, 1))
	assert.InDelta(t, 1.0/3, TimeDeltas(time.Second, 2*time.Second, 1), 1e-12)
	assert.Equal(t, 1.0, TimeDeltas(5*time.Second, -5*time.Second, 1))
}

func TestClockTimes(t *testing.T) {
	noon := TimeOfDay{Hour: 12}
	assert.Zero(t, ClockTimes(noon, noon, 1))

	// Sub-second precision is not part of the distance.
	assert.Zero(t, ClockTimes(noon, TimeOfDay{Hour: 12, Nanosecond: 5}, 1))

	// Midnight is 0 seconds, so the divisor is the other operand alone.
	assert.Equal(t, 1.0, ClockTimes(TimeOfDay{}, TimeOfDay{Second: 1}, 1))

	assert.InDelta(t, 1.0/3, ClockTimes(TimeOfDay{Hour: 1}, TimeOfDay{Hour: 2}, 1), 1e-12)
}

func TestTimeOfDayOf(t *testing.T) {
	tod := TimeOfDayOf(time.Date(2024, 1, 1, 13, 14, 15, 16, time.UTC))
	assert.Equal(t, TimeOfDay{13, 14, 15, 16}, tod)
	assert.Equal(t, 13*3600+14*60+15, tod.Seconds())
}
