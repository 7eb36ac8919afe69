// Package timetext converts between human-readable duration strings
// ("2h 53m", "45m") and integer minutes.
package timetext

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)h`)
	minutesPattern = regexp.MustCompile(`(\d+)m`)
)

// ParseMinutes extracts optional "<N>h" and "<N>m" tokens from text and
// returns the total in minutes. Each token is independent and defaults to
// zero when absent. Text with no recognizable token yields 0, never an
// error: the upstream strings come from vision-model extraction or manual
// entry and are not trusted to follow any grammar.
func ParseMinutes(text string) int {
	hours := 0
	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}

	minutes := 0
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}

	return hours*60 + minutes
}

// FormatMinutes renders total minutes back to text. The hour segment is
// omitted when zero; the minute segment always renders, so
// ParseMinutes(FormatMinutes(m)) == m for every m >= 0.
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 60
	minutes := total % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
