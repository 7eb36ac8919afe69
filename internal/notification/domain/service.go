// Package domain defines upload reminders: nudges sent to friends who have
// not posted a screen time entry today.
package domain

import (
	"context"
	"errors"
)

type Reminder struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Message    string `json:"message"`
}

type SendReminderRequest struct {
	UserID string `json:"userId"`
	// FriendID targets one friend. Empty means every friend without an
	// upload today.
	FriendID string `json:"friendId"`
}

type SendReminderResponse struct {
	Sent      int        `json:"sent"`
	Reminders []Reminder `json:"reminders"`
}

// Sender delivers a composed reminder. The default implementation only logs;
// a push backend can replace it without touching the service.
type Sender interface {
	Send(ctx context.Context, reminder Reminder) error
}

type Service interface {
	SendReminder(ctx context.Context, req SendReminderRequest) (SendReminderResponse, error)
}

var (
	ErrInvalidReminder = errors.New("invalid_reminder")
	ErrNotFriends      = errors.New("not_friends")
	ErrAlreadyUploaded = errors.New("friend_already_uploaded")
)
