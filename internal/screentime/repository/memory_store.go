package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/screenclash/screenclash/internal/screentime/domain"
)

// memoryStore is the degraded-mode store. Entries live only for the process
// lifetime; IDs are prefixed so clients can tell a fallback write apart.
type memoryStore struct {
	mu      sync.RWMutex
	entries []domain.Entry
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Create(_ context.Context, entry *domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = "server-" + ulid.Make().String()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memoryStore) List(_ context.Context, q ListQuery) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Entry
	for _, e := range s.entries {
		if q.UserID != "" && e.UserID != q.UserID {
			continue
		}
		if len(q.UserIDs) > 0 && !contains(q.UserIDs, e.UserID) {
			continue
		}
		if q.DateLabel != "" && e.DateLabel != q.DateLabel {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func contains(uids []string, uid string) bool {
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}
