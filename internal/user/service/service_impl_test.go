package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) userdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, userdomain.UpsertUserRequest{
		FirebaseUID: "alice",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.DisplayName)

	updated, err := svc.Upsert(ctx, userdomain.UpsertUserRequest{
		FirebaseUID: "alice",
		Email:       "alice@new.example.com",
		DisplayName: "Alice B",
		AvatarURL:   "https://example.com/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alice@new.example.com", updated.Email)
	assert.Equal(t, "Alice B", updated.DisplayName)
}

func TestUpsertRejectsAnonymous(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userdomain.UpsertUserRequest{FirebaseUID: "anonymous", Email: "a@b.c"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidUID)

	_, err = svc.Upsert(ctx, userdomain.UpsertUserRequest{FirebaseUID: " ", Email: "a@b.c"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidUID)

	_, err = svc.Upsert(ctx, userdomain.UpsertUserRequest{FirebaseUID: "alice"})
	assert.ErrorIs(t, err, userdomain.ErrInvalidEmail)
}

func TestGetByUIDsSkipsUnknown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, uid := range []string{"alice", "bob"} {
		_, err := svc.Upsert(ctx, userdomain.UpsertUserRequest{
			FirebaseUID: uid,
			Email:       uid + "@example.com",
		})
		require.NoError(t, err)
	}

	users, err := svc.GetByUIDs(ctx, []string{"alice", "ghost", "bob"})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.GetByUIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSearchByEmailIsCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, userdomain.UpsertUserRequest{
		FirebaseUID: "alice",
		Email:       "Alice.Smith@Example.com",
	})
	require.NoError(t, err)

	found, err := svc.SearchByEmail(ctx, "alice.smith", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].FirebaseUID)

	_, err = svc.GetByUID(ctx, "ghost")
	assert.ErrorIs(t, err, userdomain.ErrNotFound)
}
