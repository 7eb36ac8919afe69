package domain

import (
	"context"
	"errors"

	userdomain "github.com/screenclash/screenclash/internal/user/domain"
)

type OverviewResponse struct {
	Friends         []userdomain.Profile `json:"friends"`
	PendingRequests []PendingRequest     `json:"pendingRequests"`
	SentRequests    []PendingRequest     `json:"sentRequests"`
}

type SendRequestRequest struct {
	SenderID      string `json:"senderId"`
	ReceiverEmail string `json:"receiverEmail"`
}

const (
	RespondActionAccept = "accept"
	RespondActionReject = "reject"
)

type RespondRequest struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
	UserID    string `json:"userId"`
}

type Service interface {
	// FriendUIDs returns the UIDs on the other side of every friendship of uid.
	FriendUIDs(ctx context.Context, uid string) ([]string, error)
	Overview(ctx context.Context, uid string) (OverviewResponse, error)
	SendRequest(ctx context.Context, req SendRequestRequest) (*FriendRequest, error)
	Respond(ctx context.Context, req RespondRequest) error
}

var (
	ErrInvalidRequest   = errors.New("invalid_friend_request")
	ErrInvalidAction    = errors.New("invalid_action")
	ErrSelfRequest      = errors.New("self_friend_request")
	ErrAlreadyFriends   = errors.New("already_friends")
	ErrDuplicateRequest = errors.New("friend_request_exists")
	ErrRequestNotFound  = errors.New("friend_request_not_found")
)
