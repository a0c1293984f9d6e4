package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"splitpal/internal/auth"
	"splitpal/internal/models"
	"splitpal/internal/storage"
	"splitpal/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create test store")
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestJWT(t *testing.T) *auth.JWTManager {
	t.Helper()
	return auth.NewJWTManager("test-secret-at-least-16-chars", time.Hour)
}

// seedUser inserts a user directly into the store and returns its id.
func seedUser(t *testing.T, store storage.Store, email string) string {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user.ID
}

// seedFriends links two users with an accepted friendship.
func seedFriends(t *testing.T, store storage.Store, fromID, toID string) {
	t.Helper()
	f := &models.Friendship{FromUserID: fromID, ToUserID: toID, Status: models.FriendshipPending}
	require.NoError(t, store.CreateFriendship(context.Background(), f))
	require.NoError(t, store.UpdateFriendshipStatus(context.Background(), f.ID, models.FriendshipAccepted))
}

// seedGroup creates a group whose creator becomes its admin, then adds the
// extra members.
func seedGroup(t *testing.T, store storage.Store, creatorID string, memberIDs ...string) string {
	t.Helper()
	group := &models.Group{Name: "Trip", Type: models.GroupTypeTrip, CreatedBy: creatorID}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	for _, id := range memberIDs {
		member := &models.GroupMember{GroupID: group.ID, UserID: id, Role: models.RoleMember}
		require.NoError(t, store.AddGroupMember(context.Background(), member))
	}
	return group.ID
}
