// Package domain holds the leaderboard and activity-view computations:
// turning raw entries into per-user aggregates, ranking them, and mapping
// daily totals to qualitative status tiers.
package domain

import (
	"math"
	"sort"
	"time"

	"github.com/screenclash/screenclash/internal/config"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	"github.com/screenclash/screenclash/internal/timewindow"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"github.com/screenclash/screenclash/pkg/timetext"
)

// AggregatedUsage is one user's screen time over some window.
type AggregatedUsage struct {
	UserID       string
	TotalMinutes int
	EntryCount   int
	LatestEntry  *screentimedomain.Entry
}

// AverageMinutes is the per-entry average, rounded to the nearest minute
// (half up). Zero entries means zero average.
func (a AggregatedUsage) AverageMinutes() int {
	if a.EntryCount == 0 {
		return 0
	}
	return int(math.Round(float64(a.TotalMinutes) / float64(a.EntryCount)))
}

// SortDirection controls ranking order. The legacy leaderboard celebrates
// the highest total; the activity views celebrate the lowest.
type SortDirection int

const (
	SortDescending SortDirection = iota
	SortAscending
)

// RankedUsage is an aggregate with its 1-based position after sorting.
type RankedUsage struct {
	AggregatedUsage
	Rank   int
	IsSelf bool
}

// AggregateToday picks, for each user, the FIRST entry (in the given
// newest-first order) whose date label reads as today. Later same-day
// entries are ignored, mirroring the one-upload-per-day policy.
func AggregateToday(entries []screentimedomain.Entry, ref time.Time) map[string]AggregatedUsage {
	out := make(map[string]AggregatedUsage)
	for i := range entries {
		e := entries[i]
		if _, seen := out[e.UserID]; seen {
			continue
		}
		if !timewindow.IsToday(e.DateLabel, ref) {
			continue
		}
		out[e.UserID] = AggregatedUsage{
			UserID:       e.UserID,
			TotalMinutes: timetext.ParseMinutes(e.TotalTimeText),
			EntryCount:   1,
			LatestEntry:  &entries[i],
		}
	}
	return out
}

// AggregateWindow sums every entry created inside [start, end] per user.
// Unlike the daily view, multiple same-day entries all count. LatestEntry
// is the qualifying entry with the newest CreatedAt.
func AggregateWindow(entries []screentimedomain.Entry, start, end time.Time) map[string]AggregatedUsage {
	out := make(map[string]AggregatedUsage)
	for i := range entries {
		e := entries[i]
		if !timewindow.Within(e.CreatedAt, start, end) {
			continue
		}
		agg := out[e.UserID]
		agg.UserID = e.UserID
		agg.TotalMinutes += timetext.ParseMinutes(e.TotalTimeText)
		agg.EntryCount++
		if agg.LatestEntry == nil || e.CreatedAt.After(agg.LatestEntry.CreatedAt) {
			agg.LatestEntry = &entries[i]
		}
		out[e.UserID] = agg
	}
	return out
}

// Rank orders the aggregates of userIDs (users without an aggregate get a
// zero one) and assigns 1-based positions. The sort is stable over the
// input order, so ties keep the caller's ordering.
func Rank(userIDs []string, aggregates map[string]AggregatedUsage, selfID string, dir SortDirection) []RankedUsage {
	ranked := make([]RankedUsage, 0, len(userIDs))
	for _, uid := range userIDs {
		agg, ok := aggregates[uid]
		if !ok {
			agg = AggregatedUsage{UserID: uid}
		}
		ranked = append(ranked, RankedUsage{
			AggregatedUsage: agg,
			IsSelf:          uid == selfID,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if dir == SortAscending {
			return ranked[i].TotalMinutes < ranked[j].TotalMinutes
		}
		return ranked[i].TotalMinutes > ranked[j].TotalMinutes
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Classify maps a daily total to its status tier. Zero minutes reads as "no
// data yet today"; bounded tiers match on an inclusive upper bound.
func Classify(totalMinutes int, tiers []config.StatusTier) config.StatusTier {
	if len(tiers) == 0 {
		tiers = config.DefaultStatusTiers()
	}
	if totalMinutes <= 0 {
		return tiers[0]
	}
	for _, tier := range tiers[1:] {
		if tier.MaxMinutes == nil || totalMinutes <= *tier.MaxMinutes {
			return tier
		}
	}
	return tiers[len(tiers)-1]
}

// Status is the tier projection the activity views return.
type Status struct {
	Tier  string `json:"tier"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Badge string `json:"badge"`
}

func StatusOf(tier config.StatusTier) Status {
	return Status{
		Tier:  tier.Tier,
		Label: tier.Label,
		Emoji: tier.Emoji,
		Color: tier.Color,
		Badge: tier.Badge,
	}
}

// Participant is the shared per-user row of the ranked views.
type Participant struct {
	userdomain.Profile
	TotalMinutes  int    `json:"totalMinutes"`
	TotalTime     string `json:"totalTime"`
	Rank          int    `json:"rank"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}
