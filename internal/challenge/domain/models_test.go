package domain

import (
	"testing"
	"time"

	"github.com/screenclash/screenclash/internal/config"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	"github.com/screenclash/screenclash/internal/timewindow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// july30 is a Wednesday.
var july30 = time.Date(2025, time.July, 30, 15, 0, 0, 0, time.UTC)

func entry(userID, dateLabel, totalTime string, createdAt time.Time) screentimedomain.Entry {
	return screentimedomain.Entry{
		UserID:        userID,
		DateLabel:     dateLabel,
		TotalTimeText: totalTime,
		CreatedAt:     createdAt,
	}
}

func TestAggregateTodayUsesFirstMatchPerUser(t *testing.T) {
	entries := []screentimedomain.Entry{
		entry("alice", "Today", "2h", july30),
		entry("alice", "Today", "5h", july30.Add(-time.Hour)),
		entry("alice", "Tuesday, July 29", "9h", july30.AddDate(0, 0, -1)),
		entry("bob", "Wednesday, July 30", "45m", july30),
	}

	agg := AggregateToday(entries, july30)
	require.Len(t, agg, 2)
	assert.Equal(t, 120, agg["alice"].TotalMinutes)
	assert.Equal(t, 45, agg["bob"].TotalMinutes)
	assert.Equal(t, 1, agg["alice"].EntryCount)
}

func TestAggregateTodaySkipsNonTodayUsers(t *testing.T) {
	entries := []screentimedomain.Entry{
		entry("carol", "Tuesday, July 29", "3h", july30.AddDate(0, 0, -1)),
	}
	agg := AggregateToday(entries, july30)
	assert.Empty(t, agg)
}

func TestAggregateWindowSumsAllEntries(t *testing.T) {
	start, end := timewindow.WeekRange(july30)

	entries := []screentimedomain.Entry{
		entry("alice", "Monday, July 28", "1h", start.Add(time.Hour)),
		entry("alice", "Tuesday, July 29", "1h 30m", start.AddDate(0, 0, 1)),
		entry("alice", "Sunday, July 27", "9h", start.Add(-time.Hour)), // previous week
		entry("bob", "Wednesday, July 30", "garbage", july30),
	}

	agg := AggregateWindow(entries, start, end)
	require.Len(t, agg, 2)
	assert.Equal(t, 150, agg["alice"].TotalMinutes)
	assert.Equal(t, 2, agg["alice"].EntryCount)
	assert.Equal(t, 75, agg["alice"].AverageMinutes())
	assert.Equal(t, 0, agg["bob"].TotalMinutes)
	assert.Equal(t, 1, agg["bob"].EntryCount)

	// LatestEntry is the newest qualifying entry, not the first seen.
	require.NotNil(t, agg["alice"].LatestEntry)
	assert.Equal(t, start.AddDate(0, 0, 1), agg["alice"].LatestEntry.CreatedAt)
}

func TestAverageMinutesRoundsHalfUp(t *testing.T) {
	cases := []struct {
		total, count, want int
	}{
		{0, 0, 0},
		{5, 2, 3},   // 2.5 rounds up
		{7, 3, 2},   // 2.33 rounds down
		{8, 3, 3},   // 2.67 rounds up
		{150, 2, 75},
	}
	for _, tc := range cases {
		agg := AggregatedUsage{TotalMinutes: tc.total, EntryCount: tc.count}
		assert.Equal(t, tc.want, agg.AverageMinutes(), "total=%d count=%d", tc.total, tc.count)
	}

	// End to end: two tiny entries averaging 2.5 minutes read as 3.
	start, end := timewindow.WeekRange(july30)
	entries := []screentimedomain.Entry{
		entry("alice", "Monday, July 28", "3m", start.Add(time.Hour)),
		entry("alice", "Tuesday, July 29", "2m", start.AddDate(0, 0, 1)),
	}
	agg := AggregateWindow(entries, start, end)
	assert.Equal(t, 3, agg["alice"].AverageMinutes())
}

func TestRankDirections(t *testing.T) {
	aggregates := map[string]AggregatedUsage{
		"alice": {UserID: "alice", TotalMinutes: 60},
		"bob":   {UserID: "bob", TotalMinutes: 150},
	}
	uids := []string{"alice", "bob", "carol"}

	desc := Rank(uids, aggregates, "alice", SortDescending)
	require.Len(t, desc, 3)
	assert.Equal(t, "bob", desc[0].UserID)
	assert.Equal(t, 1, desc[0].Rank)
	assert.Equal(t, "alice", desc[1].UserID)
	assert.True(t, desc[1].IsSelf)
	assert.Equal(t, "carol", desc[2].UserID)
	assert.Equal(t, 0, desc[2].TotalMinutes)

	asc := Rank(uids, aggregates, "alice", SortAscending)
	assert.Equal(t, "carol", asc[0].UserID)
	assert.Equal(t, "alice", asc[1].UserID)
	assert.Equal(t, "bob", asc[2].UserID)
	assert.Equal(t, 3, asc[2].Rank)
}

func TestRankStableOnTies(t *testing.T) {
	aggregates := map[string]AggregatedUsage{
		"alice": {UserID: "alice", TotalMinutes: 90},
		"bob":   {UserID: "bob", TotalMinutes: 90},
	}
	uids := []string{"alice", "bob"}

	ranked := Rank(uids, aggregates, "", SortAscending)
	assert.Equal(t, "alice", ranked[0].UserID)
	assert.Equal(t, "bob", ranked[1].UserID)

	// Ranking the output again does not reshuffle ties.
	again := Rank(uids, aggregates, "", SortAscending)
	assert.Equal(t, ranked, again)
}

func TestClassifyBoundaries(t *testing.T) {
	tiers := config.DefaultStatusTiers()

	cases := []struct {
		minutes int
		tier    string
	}{
		{0, config.TierNoData},
		{1, "crushing_it"},
		{120, "crushing_it"},
		{121, "on_track"},
		{240, "on_track"},
		{241, "struggling"},
		{360, "struggling"},
		{361, "sos"},
		{10000, "sos"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, Classify(tc.minutes, tiers).Tier, "minutes=%d", tc.minutes)
	}
}

func TestClassifyEmptyTableFallsBackToDefaults(t *testing.T) {
	got := Classify(130, nil)
	assert.Equal(t, "on_track", got.Tier)
}
