package service

import (
	"context"
	"fmt"
	"strings"

	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	notificationdomain "github.com/screenclash/screenclash/internal/notification/domain"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LogSender writes reminders to the application log. It stands in until a
// real push channel exists.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) notificationdomain.Sender {
	return &LogSender{log: log.Named("notification.sender")}
}

func (s *LogSender) Send(_ context.Context, reminder notificationdomain.Reminder) error {
	s.log.Info("reminder sent",
		zap.String("from_user_id", reminder.FromUserID),
		zap.String("to_user_id", reminder.ToUserID),
		zap.String("message", reminder.Message),
	)
	return nil
}

type ServiceParam struct {
	fx.In

	Log         *zap.Logger
	Sender      notificationdomain.Sender
	Users       userdomain.Service
	Friendships friendshipdomain.Service
	Entries     screentimedomain.Service
}

type Service struct {
	log         *zap.Logger
	sender      notificationdomain.Sender
	users       userdomain.Service
	friendships friendshipdomain.Service
	entries     screentimedomain.Service
}

func NewService(p ServiceParam) notificationdomain.Service {
	return &Service{
		log:         p.Log.Named("notification.service"),
		sender:      p.Sender,
		users:       p.Users,
		friendships: p.Friendships,
		entries:     p.Entries,
	}
}

func (s *Service) SendReminder(ctx context.Context, req notificationdomain.SendReminderRequest) (notificationdomain.SendReminderResponse, error) {
	var resp notificationdomain.SendReminderResponse

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return resp, notificationdomain.ErrInvalidReminder
	}

	sender, err := s.users.GetByUID(ctx, userID)
	if err != nil {
		return resp, err
	}

	friendUIDs, err := s.friendships.FriendUIDs(ctx, userID)
	if err != nil {
		return resp, err
	}

	targets := friendUIDs
	if friendID := strings.TrimSpace(req.FriendID); friendID != "" {
		if !containsUID(friendUIDs, friendID) {
			return resp, notificationdomain.ErrNotFriends
		}
		today, err := s.entries.CheckToday(ctx, friendID)
		if err != nil {
			return resp, err
		}
		if today.HasUploadedToday {
			return resp, notificationdomain.ErrAlreadyUploaded
		}
		targets = []string{friendID}
	}

	for _, uid := range targets {
		today, err := s.entries.CheckToday(ctx, uid)
		if err != nil {
			return resp, err
		}
		if today.HasUploadedToday {
			continue
		}

		reminder := notificationdomain.Reminder{
			FromUserID: userID,
			ToUserID:   uid,
			Message:    composeMessage(sender.DisplayName),
		}
		if err := s.sender.Send(ctx, reminder); err != nil {
			return resp, err
		}
		resp.Reminders = append(resp.Reminders, reminder)
	}

	resp.Sent = len(resp.Reminders)
	s.log.Info("reminders dispatched",
		zap.String("user_id", userID),
		zap.Int("sent", resp.Sent),
	)
	return resp, nil
}

func composeMessage(displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "Your friend"
	}
	return fmt.Sprintf("%s is waiting for your screen time today. Upload it before the day ends!", name)
}

func containsUID(uids []string, uid string) bool {
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}
