package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
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
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	users repository.Repository[userdomain.User]
}

func NewService(p ServiceParam) userdomain.Service {
	return &Service{
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		users: repository.ProvideStore[userdomain.User](p.DB),
	}
}

func (s *Service) Upsert(ctx context.Context, req userdomain.UpsertUserRequest) (*userdomain.User, error) {
	uid := strings.TrimSpace(req.FirebaseUID)
	if uid == "" || uid == "anonymous" {
		return nil, userdomain.ErrInvalidUID
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, userdomain.ErrInvalidEmail
	}

	existing, err := s.users.FindOne(ctx, &userdomain.User{FirebaseUID: uid})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if existing != nil {
		updates := map[string]any{
			"email":        email,
			"display_name": strings.TrimSpace(req.DisplayName),
			"avatar_url":   strings.TrimSpace(req.AvatarURL),
			"updated_at":   now,
		}
		if err := s.users.Update(ctx, existing.ID, updates); err != nil {
			return nil, err
		}
		return s.users.FindOne(ctx, &userdomain.User{FirebaseUID: uid})
	}

	user := &userdomain.User{
		ID:          s.genID.Generate(),
		FirebaseUID: uid,
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
		AvatarURL:   strings.TrimSpace(req.AvatarURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent first login can race on the firebase_uid unique
		// index; the row that won is the profile we want.
		if db.IsDuplicateKeyErr(err) {
			return s.users.FindOne(ctx, &userdomain.User{FirebaseUID: uid})
		}
		return nil, err
	}

	s.log.Info("user profile created", zap.String("firebase_uid", uid))
	return user, nil
}

func (s *Service) GetByUID(ctx context.Context, uid string) (*userdomain.User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, userdomain.ErrInvalidUID
	}

	user, err := s.users.FindOne(ctx, &userdomain.User{FirebaseUID: uid})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) GetByUIDs(ctx context.Context, uids []string) ([]userdomain.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	found, err := s.users.Find(ctx, &userdomain.User{},
		option.Where("firebase_uid IN ?", uids),
	)
	if err != nil {
		return nil, err
	}

	users := make([]userdomain.User, 0, len(found))
	for _, u := range found {
		users = append(users, *u)
	}
	return users, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, userdomain.ErrInvalidEmail
	}

	user, err := s.users.FindOne(ctx, &userdomain.User{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) SearchByEmail(ctx context.Context, fragment string, limit int) ([]userdomain.User, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, userdomain.ErrInvalidEmail
	}
	if limit <= 0 {
		limit = 10
	}

	found, err := s.users.Find(ctx, &userdomain.User{},
		option.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(fragment)+"%"),
		option.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	users := make([]userdomain.User, 0, len(found))
	for _, u := range found {
		users = append(users, *u)
	}
	return users, nil
}
