// Package domain contains the user profile model. Identity is owned by the
// external auth provider; profiles are keyed by its opaque UID.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type User struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"-"`
	FirebaseUID string       `gorm:"column:firebase_uid;uniqueIndex;not null" json:"firebase_uid"`
	Email       string       `gorm:"not null;index" json:"email"`
	DisplayName string       `json:"display_name"`
	AvatarURL   string       `json:"avatar_url"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Profile is the public projection shared with friends.
type Profile struct {
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (u User) Profile() Profile {
	return Profile{
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
