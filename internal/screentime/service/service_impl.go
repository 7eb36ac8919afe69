package service

import (
	"context"
	"strings"

	"github.com/screenclash/screenclash/internal/clock"
	"github.com/screenclash/screenclash/internal/config"
	"github.com/screenclash/screenclash/internal/observability/metrics"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	"github.com/screenclash/screenclash/internal/screentime/repository"
	"github.com/screenclash/screenclash/internal/timewindow"
	"github.com/screenclash/screenclash/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Cfg     config.Config
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	store   repository.Store
	metrics *metrics.Metrics
}

func NewService(p ServiceParam) screentimedomain.Service {
	var store repository.Store
	if p.Cfg.DBConfigured {
		store = repository.NewFallbackStore(p.Log, repository.NewGormStore(p.DB), repository.NewMemoryStore())
	} else {
		store = repository.NewMemoryStore()
	}
	return newService(p, store)
}

func newService(p ServiceParam, store repository.Store) *Service {
	return &Service{
		log:     p.Log.Named("screentime.service"),
		clock:   p.Clock,
		store:   store,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req screentimedomain.CreateEntryRequest) (*screentimedomain.Entry, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || userID == "anonymous" {
		return nil, screentimedomain.ErrInvalidUser
	}
	totalTime := strings.TrimSpace(req.TotalTime)
	if totalTime == "" {
		return nil, screentimedomain.ErrInvalidEntry
	}

	now := s.clock.Now()

	dateLabel := strings.TrimSpace(req.Date)
	if dateLabel == "" {
		dateLabel = timewindow.TodayLabel(now)
	} else if !timewindow.IsToday(dateLabel, now) {
		return nil, screentimedomain.ErrStaleScreenshot
	}

	today, err := s.CheckToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if today.HasUploadedToday {
		return nil, screentimedomain.ErrDuplicateUpload
	}

	entry := &screentimedomain.Entry{
		UserID:        userID,
		DateLabel:     dateLabel,
		TotalTimeText: totalTime,
		Apps:          screentimedomain.EncodeUsage(sanitizeUsage(req.Apps)),
		Categories:    screentimedomain.EncodeUsage(sanitizeUsage(req.Categories)),
		UpdatedAtText: strings.TrimSpace(req.UpdatedAt),
		CreatedAt:     now.UTC(),
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.RecordEntryIngested(ctx, "upload")
	s.log.Info("screen time entry recorded",
		zap.String("user_id", userID),
		zap.String("entry_id", entry.ID),
		zap.String("total_time", totalTime),
	)
	return entry, nil
}

// sanitizeUsage drops rows without both a name and a time text; only
// well-formed records reach storage and the aggregator.
func sanitizeUsage(usage []screentimedomain.AppUsage) []screentimedomain.AppUsage {
	out := usage[:0:0]
	for _, u := range usage {
		name := strings.TrimSpace(u.Name)
		timeText := strings.TrimSpace(u.Time)
		if name == "" || timeText == "" {
			continue
		}
		out = append(out, screentimedomain.AppUsage{Name: name, Time: timeText})
	}
	return out
}

func (s *Service) List(ctx context.Context, req screentimedomain.ListEntriesRequest) ([]screentimedomain.Entry, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, screentimedomain.ErrInvalidUser
	}

	limit := pagination.Pagination{PageSize: req.Limit}.Clamp()
	return s.store.List(ctx, repository.ListQuery{
		UserID:    userID,
		DateLabel: strings.TrimSpace(req.DateLabel),
		Limit:     limit,
	})
}

func (s *Service) ListForUsers(ctx context.Context, userIDs []string) ([]screentimedomain.Entry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	return s.store.List(ctx, repository.ListQuery{UserIDs: userIDs})
}

func (s *Service) CheckToday(ctx context.Context, userID string) (screentimedomain.CheckTodayResponse, error) {
	var resp screentimedomain.CheckTodayResponse

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return resp, screentimedomain.ErrInvalidUser
	}

	entries, err := s.store.List(ctx, repository.ListQuery{UserID: userID})
	if err != nil {
		return resp, err
	}

	now := s.clock.Now()
	for i := range entries {
		if timewindow.IsToday(entries[i].DateLabel, now) {
			resp.HasUploadedToday = true
			resp.Entry = &entries[i]
			break
		}
	}
	return resp, nil
}
