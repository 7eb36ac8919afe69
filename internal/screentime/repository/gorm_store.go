package repository

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/screenclash/screenclash/internal/screentime/domain"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *gormStore) List(ctx context.Context, q ListQuery) ([]domain.Entry, error) {
	stmt := s.db.WithContext(ctx).Model(&domain.Entry{})
	if q.UserID != "" {
		stmt = stmt.Where("user_id = ?", q.UserID)
	}
	if len(q.UserIDs) > 0 {
		stmt = stmt.Where("user_id IN ?", q.UserIDs)
	}
	if q.DateLabel != "" {
		stmt = stmt.Where("date_label = ?", q.DateLabel)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}

	var entries []domain.Entry
	if err := stmt.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
