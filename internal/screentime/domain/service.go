package domain

import (
	"context"
	"errors"
)

type CreateEntryRequest struct {
	UserID     string     `json:"userId"`
	TotalTime  string     `json:"totalTime"`
	Date       string     `json:"date"`
	Apps       []AppUsage `json:"apps"`
	Categories []AppUsage `json:"categories"`
	UpdatedAt  string     `json:"updatedAt"`
}

type ListEntriesRequest struct {
	UserID    string `form:"userId"`
	DateLabel string `form:"date"`
	Limit     int    `form:"limit"`
}

type CheckTodayResponse struct {
	HasUploadedToday bool   `json:"hasUploadedToday"`
	Entry            *Entry `json:"entry,omitempty"`
}

type Service interface {
	// Create ingests one device report. A second upload on the same day and
	// a screenshot whose date label is not today are both rejected.
	Create(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	// List returns entries newest first.
	List(ctx context.Context, req ListEntriesRequest) ([]Entry, error)
	// ListForUsers returns every entry of the given users, newest first.
	ListForUsers(ctx context.Context, userIDs []string) ([]Entry, error)
	CheckToday(ctx context.Context, userID string) (CheckTodayResponse, error)
}

var (
	ErrInvalidUser        = errors.New("invalid_user_id")
	ErrInvalidEntry       = errors.New("invalid_entry")
	ErrDuplicateUpload    = errors.New("duplicate_upload")
	ErrStaleScreenshot    = errors.New("stale_screenshot")
	ErrStorageUnavailable = errors.New("storage_unavailable")
)
