// Package repository holds the entry stores. The database store is the
// primary; an in-process store keeps uploads flowing when the database is
// down or was never configured.
package repository

import (
	"context"

	"github.com/screenclash/screenclash/internal/screentime/domain"
)

type ListQuery struct {
	UserID    string
	UserIDs   []string
	DateLabel string
	Limit     int
}

type Store interface {
	Create(ctx context.Context, entry *domain.Entry) error
	// List returns matching entries ordered by created_at descending.
	List(ctx context.Context, q ListQuery) ([]domain.Entry, error)
}
