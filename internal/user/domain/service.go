package domain

import (
	"context"
	"errors"
)

type UpsertUserRequest struct {
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type Service interface {
	// Upsert creates the profile on first login and refreshes it afterwards.
	Upsert(ctx context.Context, req UpsertUserRequest) (*User, error)
	GetByUID(ctx context.Context, uid string) (*User, error)
	// GetByUIDs hydrates profiles for a friend set; unknown UIDs are skipped.
	GetByUIDs(ctx context.Context, uids []string) ([]User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SearchByEmail(ctx context.Context, fragment string, limit int) ([]User, error)
}

var (
	ErrInvalidUID   = errors.New("invalid_user_id")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("user_not_found")
)
