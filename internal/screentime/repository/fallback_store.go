package repository

import (
	"context"

	"github.com/screenclash/screenclash/internal/screentime/domain"
	"go.uber.org/zap"
)

// fallbackStore routes every operation to the primary store and retries it
// once against the in-process store when the primary fails. There is no
// promotion: the next call goes to the primary again.
type fallbackStore struct {
	log      *zap.Logger
	primary  Store
	fallback Store
}

func NewFallbackStore(log *zap.Logger, primary, fallback Store) Store {
	return &fallbackStore{
		log:      log.Named("screentime.store"),
		primary:  primary,
		fallback: fallback,
	}
}

func (s *fallbackStore) Create(ctx context.Context, entry *domain.Entry) error {
	if err := s.primary.Create(ctx, entry); err != nil {
		s.log.Warn("primary store create failed, using memory fallback", zap.Error(err))
		if ferr := s.fallback.Create(ctx, entry); ferr != nil {
			s.log.Error("memory fallback create failed", zap.Error(ferr))
			return domain.ErrStorageUnavailable
		}
	}
	return nil
}

func (s *fallbackStore) List(ctx context.Context, q ListQuery) ([]domain.Entry, error) {
	entries, err := s.primary.List(ctx, q)
	if err != nil {
		s.log.Warn("primary store list failed, using memory fallback", zap.Error(err))
		entries, err = s.fallback.List(ctx, q)
		if err != nil {
			s.log.Error("memory fallback list failed", zap.Error(err))
			return nil, domain.ErrStorageUnavailable
		}
	}
	return entries, nil
}
