// Package timewindow decides whether screen-time entries belong to "today",
// the current Monday-to-Sunday week, or the current calendar month.
//
// "Today" is judged on the entry's free-text date label (screenshots carry
// labels like "Today" or "Wednesday, 30 July"), while week and month
// membership are judged on the server-assigned creation timestamp.
package timewindow

import (
	"strconv"
	"strings"
	"time"
)

// IsToday reports whether a free-text date label refers to the day of ref.
//
// The check is substring-based, not a calendar parse: a label matches when it
// contains "today" (any case), or when it contains both ref's numeric
// day-of-month and ref's full English month name. A label that mentions the
// same day number and month from another year is misclassified as today;
// that is a known limitation of labels that never carry a year.
func IsToday(dateLabel string, ref time.Time) bool {
	if strings.Contains(strings.ToLower(dateLabel), "today") {
		return true
	}

	day := strconv.Itoa(ref.Day())
	month := ref.Month().String()

	return strings.Contains(dateLabel, day) && strings.Contains(dateLabel, month)
}

// TodayLabel renders ref the way screenshots label their date, e.g.
// "Wednesday, July 30". Used for manual entries.
func TodayLabel(ref time.Time) string {
	return ref.Format("Monday, January 2")
}

// WeekRange returns the Monday 00:00:00.000 through Sunday 23:59:59.999
// bounds of the week containing ref, in ref's location. Monday starts the
// week regardless of locale.
func WeekRange(ref time.Time) (time.Time, time.Time) {
	offset := int(ref.Weekday()) - int(time.Monday)
	if ref.Weekday() == time.Sunday {
		offset = 6
	}

	year, month, day := ref.AddDate(0, 0, -offset).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// MonthRange returns the first-instant through last-millisecond bounds of
// ref's calendar month, in ref's location.
func MonthRange(ref time.Time) (time.Time, time.Time) {
	year, month, _ := ref.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// Within reports whether t falls inside [start, end].
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
