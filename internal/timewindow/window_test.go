package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var july30 = time.Date(2025, time.July, 30, 14, 5, 0, 0, time.UTC) // a Wednesday

func TestIsToday(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Today", true},
		{"today", true},
		{"Updated today at 11:09", true},
		{"Wednesday, 30 July", true},
		{"Wednesday, July 30", true},
		{"30 July", true},
		{"Wednesday, 29 July", false},
		{"Tuesday, 30 June", false},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, IsToday(tt.label, july30))
		})
	}
}

func TestWeekRange(t *testing.T) {
	start, end := WeekRange(july30)

	assert.Equal(t, time.Date(2025, time.July, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, time.Date(2025, time.August, 3, 23, 59, 59, 999e6, time.UTC), end)

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2025, time.August, 3, 9, 0, 0, 0, time.UTC)
	start2, _ := WeekRange(sunday)
	assert.Equal(t, start, start2)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(july30)

	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.July, 31, 23, 59, 59, 999e6, time.UTC), end)

	// February of a leap year.
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	_, febEnd := MonthRange(feb)
	assert.Equal(t, 29, febEnd.Day())
}

func TestWithin(t *testing.T) {
	start, end := WeekRange(july30)

	assert.True(t, Within(start, start, end))
	assert.True(t, Within(end, start, end))
	assert.True(t, Within(july30, start, end))
	assert.False(t, Within(start.Add(-time.Millisecond), start, end))
	assert.False(t, Within(end.Add(time.Millisecond), start, end))
}

func TestTodayLabel(t *testing.T) {
	assert.Equal(t, "Wednesday, July 30", TodayLabel(july30))
	assert.True(t, IsToday(TodayLabel(july30), july30))
}
