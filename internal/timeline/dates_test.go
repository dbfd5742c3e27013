package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDatesCountAndContiguity(t *testing.T) {
	for _, n := range []int{1, 7, 21, 60} {
		dates := GenerateDatesFrom(time.Date(2026, 8, 28, 15, 4, 5, 0, time.Local), n)
		assert.Len(t, dates, n)

		for i, d := range dates {
			assert.Equal(t, 0, d.Full.Hour(), "dates are truncated to midnight")
			if i == 0 {
				continue
			}
			prev := dates[i-1]
			assert.Equal(t, prev.Full.AddDate(0, 0, 1), d.Full, "days must be contiguous")
			assert.True(t, d.Full.After(prev.Full), "days must be strictly increasing")
		}
	}
}

func TestGenerateDatesStartsToday(t *testing.T) {
	dates := GenerateDates(3)
	assert.True(t, SameDay(dates[0].Full, time.Now()))
}

func TestGenerateDatesLabels(t *testing.T) {
	// A Friday.
	dates := GenerateDatesFrom(time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local), 2)

	assert.Equal(t, "Fri", dates[0].DayName)
	assert.Equal(t, 28, dates[0].DayNum)
	assert.Equal(t, "Aug", dates[0].Month)
	assert.Equal(t, "2026-08-28", dates[0].ISO)

	assert.Equal(t, "Sat", dates[1].DayName)
	assert.Equal(t, "2026-08-29", dates[1].ISO)
}

func TestGenerateDatesCrossesMonthBoundary(t *testing.T) {
	dates := GenerateDatesFrom(time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), 4)

	assert.Equal(t, "2026-08-30", dates[0].ISO)
	assert.Equal(t, "2026-08-31", dates[1].ISO)
	assert.Equal(t, "2026-09-01", dates[2].ISO)
	assert.Equal(t, "2026-09-02", dates[3].ISO)
	assert.Equal(t, "Sep", dates[2].Month)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 28, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 8, 28, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func TestSameDayNormalizesLocation(t *testing.T) {
	// 23:00 UTC on the 28th may be the 29th in a +2 zone; comparison happens
	// in the first argument's location.
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2026, 8, 29, 1, 0, 0, 0, loc)
	utc := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(local, utc))
}
