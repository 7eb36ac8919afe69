package timetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"2h 53m", 173},
		{"45m", 45},
		{"3h", 180},
		{"5h 14m", 314},
		{"0h 0m", 0},
		{"garbage", 0},
		{"", 0},
		{"Screen time was 1h 5m today", 65},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMinutes(tt.text))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{173, "2h 53m"},
		{45, "45m"},
		{0, "0m"},
		{60, "1h 0m"},
		{120, "2h 0m"},
		{-5, "0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.total))
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m <= 24*60; m++ {
		if got := ParseMinutes(FormatMinutes(m)); got != m {
			t.Fatalf("round trip broke at %d: got %d", m, got)
		}
	}
}
