package domain

import (
	"context"
	"time"

	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
)

type LeaderboardResponse struct {
	Entries []Participant `json:"entries"`
	Date    string        `json:"date"`
}

// DailyParticipant adds the status tier, upload flag and the details of
// today's entry. LastUpdated is nil for users with no entry today.
type DailyParticipant struct {
	Participant
	Status           Status                      `json:"status"`
	HasUploadedToday bool                        `json:"hasUploadedToday"`
	Apps             []screentimedomain.AppUsage `json:"apps"`
	Categories       []screentimedomain.AppUsage `json:"categories"`
	LastUpdated      *time.Time                  `json:"lastUpdated"`
}

type DailyActivityResponse struct {
	Friends      []DailyParticipant `json:"friends"`
	TotalFriends int                `json:"totalFriends"`
	Date         string             `json:"date"`
}

// WindowParticipant adds the multi-day aggregate fields. LastUpdated is the
// CreatedAt of the newest entry inside the window, nil when there is none.
type WindowParticipant struct {
	Participant
	DailyAverageMinutes int        `json:"dailyAverageMinutes"`
	DailyAverageTime    string     `json:"dailyAverageTime"`
	EntryCount          int        `json:"entryCount"`
	LastUpdated         *time.Time `json:"lastUpdated"`
}

type WindowRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WindowActivityResponse struct {
	Friends      []WindowParticipant `json:"friends"`
	TotalFriends int                 `json:"totalFriends"`
	Range        WindowRange         `json:"range"`
}

type Service interface {
	// DailyLeaderboard ranks the user and their friends by today's total,
	// highest first.
	DailyLeaderboard(ctx context.Context, userID string) (LeaderboardResponse, error)
	// DailyActivity ranks lowest first and attaches status tiers.
	DailyActivity(ctx context.Context, userID string) (DailyActivityResponse, error)
	WeeklyActivity(ctx context.Context, userID string) (WindowActivityResponse, error)
	MonthlyActivity(ctx context.Context, userID string) (WindowActivityResponse, error)
}
