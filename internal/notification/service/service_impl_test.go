package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/screenclash/screenclash/internal/clock"
	"github.com/screenclash/screenclash/internal/config"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	friendshipservice "github.com/screenclash/screenclash/internal/friendship/service"
	notificationdomain "github.com/screenclash/screenclash/internal/notification/domain"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	screentimeservice "github.com/screenclash/screenclash/internal/screentime/service"
	"github.com/screenclash/screenclash/internal/timewindow"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	userservice "github.com/screenclash/screenclash/internal/user/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var july30 = time.Date(2025, time.July, 30, 15, 0, 0, 0, time.UTC)

type captureSender struct {
	sent []notificationdomain.Reminder
}

func (s *captureSender) Send(_ context.Context, r notificationdomain.Reminder) error {
	s.sent = append(s.sent, r)
	return nil
}

type fixture struct {
	sender      *captureSender
	users       userdomain.Service
	friendships friendshipdomain.Service
	entries     screentimedomain.Service
	svc         notificationdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userdomain.User{},
		&friendshipdomain.Friendship{},
		&friendshipdomain.FriendRequest{},
		&screentimedomain.Entry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	clk := clock.NewFakeClock(july30)

	users := userservice.NewService(userservice.ServiceParam{DB: db, Log: log, GenID: node})
	friendships := friendshipservice.NewService(friendshipservice.ServiceParam{
		DB: db, Log: log, GenID: node, Users: users,
	})
	entries := screentimeservice.NewService(screentimeservice.ServiceParam{
		DB: db, Log: log, Cfg: config.Config{DBConfigured: true, DBType: "sqlite"}, Clock: clk,
	})

	sender := &captureSender{}
	svc := NewService(ServiceParam{
		Log:         log,
		Sender:      sender,
		Users:       users,
		Friendships: friendships,
		Entries:     entries,
	})

	f := &fixture{sender: sender, users: users, friendships: friendships, entries: entries, svc: svc}

	for _, uid := range []string{"alice", "bob", "carol"} {
		_, err := users.Upsert(context.Background(), userdomain.UpsertUserRequest{
			FirebaseUID: uid,
			Email:       uid + "@example.com",
			DisplayName: uid,
		})
		require.NoError(t, err)
	}
	f.befriend(t, "alice", "bob")
	f.befriend(t, "alice", "carol")
	return f
}

func (f *fixture) befriend(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	req, err := f.friendships.SendRequest(ctx, friendshipdomain.SendRequestRequest{
		SenderID:      a,
		ReceiverEmail: b + "@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, f.friendships.Respond(ctx, friendshipdomain.RespondRequest{
		RequestID: req.ID.String(),
		Action:    friendshipdomain.RespondActionAccept,
		UserID:    b,
	}))
}

func (f *fixture) upload(t *testing.T, uid string) {
	t.Helper()
	_, err := f.entries.Create(context.Background(), screentimedomain.CreateEntryRequest{
		UserID:    uid,
		TotalTime: "1h",
		Date:      timewindow.TodayLabel(july30),
	})
	require.NoError(t, err)
}

func TestSendReminderToAllLaggingFriends(t *testing.T) {
	f := newFixture(t)
	f.upload(t, "bob") // bob is done for the day

	resp, err := f.svc.SendReminder(context.Background(), notificationdomain.SendReminderRequest{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Sent)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "carol", f.sender.sent[0].ToUserID)
	assert.Contains(t, f.sender.sent[0].Message, "alice")
}

func TestSendReminderToOneFriend(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.SendReminder(context.Background(), notificationdomain.SendReminderRequest{
		UserID:   "alice",
		FriendID: "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, "bob", f.sender.sent[0].ToUserID)
}

func TestSendReminderRejectsUploadedFriend(t *testing.T) {
	f := newFixture(t)
	f.upload(t, "bob")

	_, err := f.svc.SendReminder(context.Background(), notificationdomain.SendReminderRequest{
		UserID:   "alice",
		FriendID: "bob",
	})
	assert.ErrorIs(t, err, notificationdomain.ErrAlreadyUploaded)
}

func TestSendReminderRejectsNonFriend(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendReminder(context.Background(), notificationdomain.SendReminderRequest{
		UserID:   "bob",
		FriendID: "carol", // bob and carol are not friends
	})
	assert.ErrorIs(t, err, notificationdomain.ErrNotFriends)
}
