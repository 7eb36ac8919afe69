package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"github.com/screenclash/screenclash/pkg/db"
	"github.com/screenclash/screenclash/pkg/db/option"
	"github.com/screenclash/screenclash/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Users userdomain.Service
}

type Service struct {
	log         *zap.Logger
	genID       *snowflake.Node
	users       userdomain.Service
	friendships repository.Repository[friendshipdomain.Friendship]
	requests    repository.Repository[friendshipdomain.FriendRequest]
}

func NewService(p ServiceParam) friendshipdomain.Service {
	return &Service{
		log:         p.Log.Named("friendship.service"),
		genID:       p.GenID,
		users:       p.Users,
		friendships: repository.ProvideStore[friendshipdomain.Friendship](p.DB),
		requests:    repository.ProvideStore[friendshipdomain.FriendRequest](p.DB),
	}
}

// orderPair returns the two UIDs in lexicographic order, matching the
// canonical storage order of friendship rows.
func orderPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

func (s *Service) FriendUIDs(ctx context.Context, uid string) ([]string, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, userdomain.ErrInvalidUID
	}

	rows, err := s.friendships.Find(ctx, &friendshipdomain.Friendship{},
		option.Where("user1_id = ? OR user2_id = ?", uid, uid),
	)
	if err != nil {
		return nil, err
	}

	uids := make([]string, 0, len(rows))
	for _, f := range rows {
		uids = append(uids, f.Other(uid))
	}
	return uids, nil
}

func (s *Service) Overview(ctx context.Context, uid string) (friendshipdomain.OverviewResponse, error) {
	var resp friendshipdomain.OverviewResponse

	friendUIDs, err := s.FriendUIDs(ctx, uid)
	if err != nil {
		return resp, err
	}

	friends, err := s.users.GetByUIDs(ctx, friendUIDs)
	if err != nil {
		return resp, err
	}
	resp.Friends = make([]userdomain.Profile, 0, len(friends))
	for _, u := range friends {
		resp.Friends = append(resp.Friends, u.Profile())
	}

	incoming, err := s.requests.Find(ctx, &friendshipdomain.FriendRequest{
		ReceiverID: uid,
		Status:     friendshipdomain.RequestStatusPending,
	})
	if err != nil {
		return resp, err
	}
	resp.PendingRequests = make([]friendshipdomain.PendingRequest, 0, len(incoming))
	for _, r := range incoming {
		item := friendshipdomain.PendingRequest{FriendRequest: *r}
		if sender, err := s.users.GetByUID(ctx, r.SenderID); err == nil {
			p := sender.Profile()
			item.Sender = &p
		}
		resp.PendingRequests = append(resp.PendingRequests, item)
	}

	outgoing, err := s.requests.Find(ctx, &friendshipdomain.FriendRequest{
		SenderID: uid,
		Status:   friendshipdomain.RequestStatusPending,
	})
	if err != nil {
		return resp, err
	}
	resp.SentRequests = make([]friendshipdomain.PendingRequest, 0, len(outgoing))
	for _, r := range outgoing {
		item := friendshipdomain.PendingRequest{FriendRequest: *r}
		if receiver, err := s.users.GetByUID(ctx, r.ReceiverID); err == nil {
			p := receiver.Profile()
			item.Receiver = &p
		}
		resp.SentRequests = append(resp.SentRequests, item)
	}

	return resp, nil
}

func (s *Service) SendRequest(ctx context.Context, req friendshipdomain.SendRequestRequest) (*friendshipdomain.FriendRequest, error) {
	senderID := strings.TrimSpace(req.SenderID)
	if senderID == "" {
		return nil, userdomain.ErrInvalidUID
	}
	email := strings.TrimSpace(req.ReceiverEmail)
	if email == "" {
		return nil, userdomain.ErrInvalidEmail
	}

	receiver, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if receiver.FirebaseUID == senderID {
		return nil, friendshipdomain.ErrSelfRequest
	}

	u1, u2 := orderPair(senderID, receiver.FirebaseUID)
	existing, err := s.friendships.FindOne(ctx, &friendshipdomain.Friendship{User1ID: u1, User2ID: u2})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, friendshipdomain.ErrAlreadyFriends
	}

	// A pending request in either direction blocks a new one.
	dup, err := s.requests.FindOne(ctx, &friendshipdomain.FriendRequest{},
		option.Where(
			"status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			friendshipdomain.RequestStatusPending,
			senderID, receiver.FirebaseUID,
			receiver.FirebaseUID, senderID,
		),
	)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, friendshipdomain.ErrDuplicateRequest
	}

	now := time.Now().UTC()
	request := &friendshipdomain.FriendRequest{
		ID:         s.genID.Generate(),
		SenderID:   senderID,
		ReceiverID: receiver.FirebaseUID,
		Status:     friendshipdomain.RequestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.log.Info("friend request sent",
		zap.String("sender_id", senderID),
		zap.String("receiver_id", receiver.FirebaseUID),
	)
	return request, nil
}

func (s *Service) Respond(ctx context.Context, req friendshipdomain.RespondRequest) error {
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" || strings.TrimSpace(req.UserID) == "" {
		return friendshipdomain.ErrInvalidRequest
	}
	if req.Action != friendshipdomain.RespondActionAccept && req.Action != friendshipdomain.RespondActionReject {
		return friendshipdomain.ErrInvalidAction
	}

	id, err := snowflake.ParseString(requestID)
	if err != nil {
		return friendshipdomain.ErrInvalidRequest
	}

	request, err := s.requests.FindOne(ctx, &friendshipdomain.FriendRequest{ID: id})
	if err != nil {
		return err
	}
	if request == nil || request.Status != friendshipdomain.RequestStatusPending {
		return friendshipdomain.ErrRequestNotFound
	}
	// Only the receiver may answer.
	if request.ReceiverID != req.UserID {
		return friendshipdomain.ErrRequestNotFound
	}

	status := friendshipdomain.RequestStatusRejected
	if req.Action == friendshipdomain.RespondActionAccept {
		status = friendshipdomain.RequestStatusAccepted
	}
	if err := s.requests.Update(ctx, request.ID, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return err
	}

	if status == friendshipdomain.RequestStatusAccepted {
		u1, u2 := orderPair(request.SenderID, request.ReceiverID)
		if err := s.friendships.Create(ctx, &friendshipdomain.Friendship{
			ID:        s.genID.Generate(),
			User1ID:   u1,
			User2ID:   u2,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return friendshipdomain.ErrAlreadyFriends
			}
			return err
		}
		s.log.Info("friendship created",
			zap.String("user1_id", u1),
			zap.String("user2_id", u2),
		)
	}

	return nil
}
