// Package domain contains the friendship graph models. A friendship row
// stores its user pair in lexicographic order so each pair exists once.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
)

type Friendship struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	User1ID   string       `gorm:"column:user1_id;not null;index;uniqueIndex:uq_friendship_pair" json:"user1_id"`
	User2ID   string       `gorm:"column:user2_id;not null;uniqueIndex:uq_friendship_pair" json:"user2_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Friendship) TableName() string { return "friendships" }

// Other returns the friend's UID from the perspective of uid.
func (f Friendship) Other(uid string) string {
	if f.User1ID == uid {
		return f.User2ID
	}
	return f.User1ID
}

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

type FriendRequest struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	SenderID   string       `gorm:"not null;index" json:"sender_id"`
	ReceiverID string       `gorm:"not null;index" json:"receiver_id"`
	Status     string       `gorm:"not null;default:pending" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FriendRequest) TableName() string { return "friend_requests" }

// PendingRequest is a request hydrated with the counterparty's profile.
type PendingRequest struct {
	FriendRequest
	Sender   *userdomain.Profile `json:"sender,omitempty"`
	Receiver *userdomain.Profile `json:"receiver,omitempty"`
}
