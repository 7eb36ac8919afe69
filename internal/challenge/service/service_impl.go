package service

import (
	"context"
	"strings"
	"time"

	challengedomain "github.com/screenclash/screenclash/internal/challenge/domain"
	"github.com/screenclash/screenclash/internal/clock"
	"github.com/screenclash/screenclash/internal/config"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	"github.com/screenclash/screenclash/internal/timewindow"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"github.com/screenclash/screenclash/pkg/timetext"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	Tiers       *config.TiersHolder
	Users       userdomain.Service
	Friendships friendshipdomain.Service
	Entries     screentimedomain.Service
}

type Service struct {
	log         *zap.Logger
	clock       clock.Clock
	tiers       *config.TiersHolder
	users       userdomain.Service
	friendships friendshipdomain.Service
	entries     screentimedomain.Service
}

func NewService(p ServiceParam) challengedomain.Service {
	return &Service{
		log:         p.Log.Named("challenge.service"),
		clock:       p.Clock,
		tiers:       p.Tiers,
		users:       p.Users,
		friendships: p.Friendships,
		entries:     p.Entries,
	}
}

// cohort is the user plus their friends, with profiles and all raw entries
// hydrated once per request.
type cohort struct {
	selfID     string
	friendUIDs []string
	memberUIDs []string
	profiles   map[string]userdomain.Profile
	entries    []screentimedomain.Entry
}

func (s *Service) loadCohort(ctx context.Context, userID string) (cohort, error) {
	var c cohort

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return c, userdomain.ErrInvalidUID
	}
	c.selfID = userID

	friendUIDs, err := s.friendships.FriendUIDs(ctx, userID)
	if err != nil {
		return c, err
	}
	c.friendUIDs = friendUIDs
	c.memberUIDs = append([]string{userID}, friendUIDs...)

	users, err := s.users.GetByUIDs(ctx, c.memberUIDs)
	if err != nil {
		return c, err
	}
	c.profiles = make(map[string]userdomain.Profile, len(users))
	for _, u := range users {
		c.profiles[u.FirebaseUID] = u.Profile()
	}

	entries, err := s.entries.ListForUsers(ctx, c.memberUIDs)
	if err != nil {
		return c, err
	}
	c.entries = entries

	return c, nil
}

func (c cohort) profileOf(uid string) userdomain.Profile {
	if p, ok := c.profiles[uid]; ok {
		return p
	}
	return userdomain.Profile{FirebaseUID: uid}
}

func (c cohort) participant(r challengedomain.RankedUsage) challengedomain.Participant {
	return challengedomain.Participant{
		Profile:       c.profileOf(r.UserID),
		TotalMinutes:  r.TotalMinutes,
		TotalTime:     timetext.FormatMinutes(r.TotalMinutes),
		Rank:          r.Rank,
		IsCurrentUser: r.IsSelf,
	}
}

func (s *Service) DailyLeaderboard(ctx context.Context, userID string) (challengedomain.LeaderboardResponse, error) {
	var resp challengedomain.LeaderboardResponse

	c, err := s.loadCohort(ctx, userID)
	if err != nil {
		return resp, err
	}

	now := s.clock.Now()
	aggregates := challengedomain.AggregateToday(c.entries, now)
	ranked := challengedomain.Rank(c.memberUIDs, aggregates, c.selfID, challengedomain.SortDescending)

	resp.Entries = make([]challengedomain.Participant, 0, len(ranked))
	for _, r := range ranked {
		resp.Entries = append(resp.Entries, c.participant(r))
	}
	resp.Date = timewindow.TodayLabel(now)
	return resp, nil
}

func (s *Service) DailyActivity(ctx context.Context, userID string) (challengedomain.DailyActivityResponse, error) {
	var resp challengedomain.DailyActivityResponse

	c, err := s.loadCohort(ctx, userID)
	if err != nil {
		return resp, err
	}

	now := s.clock.Now()
	tiers := s.tiers.Tiers()
	aggregates := challengedomain.AggregateToday(c.entries, now)
	ranked := challengedomain.Rank(c.memberUIDs, aggregates, c.selfID, challengedomain.SortAscending)

	resp.Friends = make([]challengedomain.DailyParticipant, 0, len(ranked))
	for _, r := range ranked {
		_, uploaded := aggregates[r.UserID]
		row := challengedomain.DailyParticipant{
			Participant:      c.participant(r),
			Status:           challengedomain.StatusOf(challengedomain.Classify(r.TotalMinutes, tiers)),
			HasUploadedToday: uploaded,
			Apps:             []screentimedomain.AppUsage{},
			Categories:       []screentimedomain.AppUsage{},
		}
		if e := r.LatestEntry; e != nil {
			if apps := e.ParsedApps(); apps != nil {
				row.Apps = apps
			}
			if categories := e.ParsedCategories(); categories != nil {
				row.Categories = categories
			}
			created := e.CreatedAt
			row.LastUpdated = &created
		}
		resp.Friends = append(resp.Friends, row)
	}
	resp.TotalFriends = len(c.friendUIDs)
	resp.Date = timewindow.TodayLabel(now)
	return resp, nil
}

func (s *Service) WeeklyActivity(ctx context.Context, userID string) (challengedomain.WindowActivityResponse, error) {
	now := s.clock.Now()
	start, end := timewindow.WeekRange(now)
	return s.windowActivity(ctx, userID, start, end)
}

func (s *Service) MonthlyActivity(ctx context.Context, userID string) (challengedomain.WindowActivityResponse, error) {
	now := s.clock.Now()
	start, end := timewindow.MonthRange(now)
	return s.windowActivity(ctx, userID, start, end)
}

func (s *Service) windowActivity(ctx context.Context, userID string, start, end time.Time) (challengedomain.WindowActivityResponse, error) {
	var resp challengedomain.WindowActivityResponse

	c, err := s.loadCohort(ctx, userID)
	if err != nil {
		return resp, err
	}

	aggregates := challengedomain.AggregateWindow(c.entries, start, end)
	ranked := challengedomain.Rank(c.memberUIDs, aggregates, c.selfID, challengedomain.SortAscending)

	resp.Friends = make([]challengedomain.WindowParticipant, 0, len(ranked))
	for _, r := range ranked {
		avg := r.AverageMinutes()
		row := challengedomain.WindowParticipant{
			Participant:         c.participant(r),
			DailyAverageMinutes: avg,
			DailyAverageTime:    timetext.FormatMinutes(avg),
			EntryCount:          r.EntryCount,
		}
		if e := r.LatestEntry; e != nil {
			created := e.CreatedAt
			row.LastUpdated = &created
		}
		resp.Friends = append(resp.Friends, row)
	}
	resp.TotalFriends = len(c.friendUIDs)
	resp.Range = challengedomain.WindowRange{Start: start, End: end}
	return resp, nil
}
