// Package timeline turns channels, dates and posts into the renderable
// swimlane grid of the scheduling dashboard.
package timeline

import "time"

// DefaultDays is how far ahead the dashboard looks.
const DefaultDays = 21

// Date is one column of the timeline.
type Date struct {
	Full    time.Time
	DayName string // "Mon"
	DayNum  int
	Month   string // "Jan"
	ISO     string // "2006-01-02", the bucketing key
}

// GenerateDates produces n consecutive calendar days starting today.
func GenerateDates(n int) []Date {
	return GenerateDatesFrom(time.Now(), n)
}

// GenerateDatesFrom produces n consecutive calendar days starting at from,
// in from's location.
func GenerateDatesFrom(from time.Time, n int) []Date {
	start := truncateToDay(from)
	dates := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i)
		dates = append(dates, Date{
			Full:    day,
			DayName: day.Format("Mon"),
			DayNum:  day.Day(),
			Month:   day.Format("Jan"),
			ISO:     day.Format("2006-01-02"),
		})
	}
	return dates
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
