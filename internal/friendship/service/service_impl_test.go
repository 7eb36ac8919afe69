package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	userservice "github.com/screenclash/screenclash/internal/user/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (friendshipdomain.Service, userdomain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userdomain.User{},
		&friendshipdomain.Friendship{},
		&friendshipdomain.FriendRequest{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	users := userservice.NewService(userservice.ServiceParam{
		DB: db, Log: zap.NewNop(), GenID: node,
	})
	friendships := NewService(ServiceParam{
		DB: db, Log: zap.NewNop(), GenID: node, Users: users,
	})
	return friendships, users
}

func seedUser(t *testing.T, users userdomain.Service, uid, email string) {
	t.Helper()
	_, err := users.Upsert(context.Background(), userdomain.UpsertUserRequest{
		FirebaseUID: uid,
		Email:       email,
		DisplayName: uid,
	})
	require.NoError(t, err)
}

func TestSendRequestAndAccept(t *testing.T) {
	svc, users := newTestServices(t)
	ctx := context.Background()

	seedUser(t, users, "alice", "alice@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	req, err := svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, friendshipdomain.RequestStatusPending, req.Status)

	// Receiver sees it as pending, sender as sent.
	bobView, err := svc.Overview(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobView.PendingRequests, 1)
	require.NotNil(t, bobView.PendingRequests[0].Sender)
	assert.Equal(t, "alice", bobView.PendingRequests[0].Sender.FirebaseUID)

	aliceView, err := svc.Overview(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceView.SentRequests, 1)

	err = svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    friendshipdomain.RespondActionAccept,
		UserID:    "bob",
	})
	require.NoError(t, err)

	uids, err := svc.FriendUIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, uids)

	bobView, err = svc.Overview(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobView.PendingRequests)
	require.Len(t, bobView.Friends, 1)
	assert.Equal(t, "alice", bobView.Friends[0].FirebaseUID)
}

func TestSendRequestRejectsSelf(t *testing.T) {
	svc, users := newTestServices(t)
	seedUser(t, users, "alice", "alice@example.com")

	_, err := svc.SendRequest(context.Background(), friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "alice@example.com",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrSelfRequest)
}

func TestSendRequestUnknownEmail(t *testing.T) {
	svc, users := newTestServices(t)
	seedUser(t, users, "alice", "alice@example.com")

	_, err := svc.SendRequest(context.Background(), friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "nobody@example.com",
	})
	assert.ErrorIs(t, err, userdomain.ErrNotFound)
}

func TestSendRequestDuplicateEitherDirection(t *testing.T) {
	svc, users := newTestServices(t)
	ctx := context.Background()

	seedUser(t, users, "alice", "alice@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	_, err := svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrDuplicateRequest)

	// The reverse direction is also blocked while the first is pending.
	_, err = svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "bob",
		ReceiverEmail: "alice@example.com",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrDuplicateRequest)
}

func TestSendRequestAlreadyFriends(t *testing.T) {
	svc, users := newTestServices(t)
	ctx := context.Background()

	seedUser(t, users, "alice", "alice@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	req, err := svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    friendshipdomain.RespondActionAccept,
		UserID:    "bob",
	}))

	_, err = svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "bob",
		ReceiverEmail: "alice@example.com",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrAlreadyFriends)
}

func TestRespondReject(t *testing.T) {
	svc, users := newTestServices(t)
	ctx := context.Background()

	seedUser(t, users, "alice", "alice@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	req, err := svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    friendshipdomain.RespondActionReject,
		UserID:    "bob",
	}))

	uids, err := svc.FriendUIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, uids)

	// A rejected request no longer blocks a new one.
	_, err = svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	assert.NoError(t, err)
}

func TestRespondGuards(t *testing.T) {
	svc, users := newTestServices(t)
	ctx := context.Background()

	seedUser(t, users, "alice", "alice@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	req, err := svc.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      "alice",
		ReceiverEmail: "bob@example.com",
	})
	require.NoError(t, err)

	err = svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    "maybe",
		UserID:    "bob",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrInvalidAction)

	// Only the receiver may answer.
	err = svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    friendshipdomain.RespondActionAccept,
		UserID:    "alice",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrRequestNotFound)

	err = svc.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: "999999",
		Action:    friendshipdomain.RespondActionAccept,
		UserID:    "bob",
	})
	assert.ErrorIs(t, err, friendshipdomain.ErrRequestNotFound)
}
