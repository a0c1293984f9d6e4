package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"splitpal/internal/auth"
	"splitpal/internal/models"
	"splitpal/internal/storage"
)

var (
	ErrSelfFriendship     = errors.New("cannot send a friend request to yourself")
	ErrNotFriendRecipient = errors.New("only the request recipient can respond")
	ErrFriendshipResolved = errors.New("friend request has already been resolved")
)

// UserService handles registration, login, and friendships.
type UserService struct {
	store storage.Store
	jwt   *auth.JWTManager
}

// NewUserService creates a UserService with the given storage backend and
// token manager.
func NewUserService(store storage.Store, jwt *auth.JWTManager) *UserService {
	return &UserService{store: store, jwt: jwt}
}

// Register creates a new account and returns a session token for it.
func (s *UserService) Register(ctx context.Context, user *models.User, password string) (string, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.store.CreateUser(ctx, user); err != nil {
		return "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID)
	return token, nil
}

// Login verifies the credentials and returns the user with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Profile returns the user's own account.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// RequestFriend sends a pending friend request from fromID to toID.
func (s *UserService) RequestFriend(ctx context.Context, fromID, toID string) (*models.Friendship, error) {
	if fromID == toID {
		return nil, ErrSelfFriendship
	}
	if _, err := s.store.GetUserByID(ctx, toID); err != nil {
		return nil, err
	}

	friendship := &models.Friendship{
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.FriendshipPending,
	}
	if err := s.store.CreateFriendship(ctx, friendship); err != nil {
		return nil, err
	}

	slog.Info("Friend request sent", "friendship_id", friendship.ID, "from", fromID, "to", toID)
	return friendship, nil
}

// RespondFriend accepts or rejects a pending request. Only the recipient may
// respond, and only once.
func (s *UserService) RespondFriend(ctx context.Context, userID, friendshipID string, accept bool) (*models.Friendship, error) {
	friendship, err := s.store.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if friendship.ToUserID != userID {
		return nil, ErrNotFriendRecipient
	}
	if friendship.Status != models.FriendshipPending {
		return nil, ErrFriendshipResolved
	}

	status := models.FriendshipRejected
	if accept {
		status = models.FriendshipAccepted
	}
	if err := s.store.UpdateFriendshipStatus(ctx, friendshipID, status); err != nil {
		return nil, err
	}

	friendship.Status = status
	slog.Info("Friend request resolved", "friendship_id", friendshipID, "status", status)
	return friendship, nil
}

// ListFriends returns the user's accepted friends.
func (s *UserService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	return s.store.ListFriends(ctx, userID)
}
