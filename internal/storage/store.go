// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitpal/internal/models"
)

// Sentinel errors returned by Store implementations. Callers compare with
// errors.Is to map them to their own failure modes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrGroupNotFound      = errors.New("group not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrFriendshipExists   = errors.New("friendship already exists")
)

// Store defines the interface for splitpal's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user, populating ID and CreatedAt.
	// Returns ErrEmailExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UsersExist reports which of the given user IDs exist.
	UsersExist(ctx context.Context, userIDs []string) (map[string]bool, error)

	// CreateFriendship persists a new pending friend request.
	// Returns ErrFriendshipExists if a friendship already links the pair.
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error

	// GetFriendship retrieves a friendship by ID.
	GetFriendship(ctx context.Context, id string) (*models.Friendship, error)

	// UpdateFriendshipStatus transitions a friendship to the given status.
	UpdateFriendshipStatus(ctx context.Context, id string, status models.FriendshipStatus) error

	// AreFriends reports whether an accepted friendship links the two users,
	// in either direction.
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)

	// ListFriends returns the users linked to userID by accepted friendships.
	ListFriends(ctx context.Context, userID string) ([]models.User, error)

	// CreateGroup persists a group and its creator's admin membership as one
	// atomic unit, populating ID and CreatedAt.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// AddGroupMember persists a membership row.
	AddGroupMember(ctx context.Context, member *models.GroupMember) error

	// IsGroupMember reports whether the user belongs to the group.
	// Returns ErrGroupNotFound if the group does not exist.
	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)

	// IsGroupAdmin reports whether the user is an admin of the group.
	// Returns ErrGroupNotFound if the group does not exist.
	IsGroupAdmin(ctx context.Context, groupID, userID string) (bool, error)

	// GroupMembersOf reports which of the given user IDs are members of the
	// group. Returns ErrGroupNotFound if the group does not exist.
	GroupMembersOf(ctx context.Context, groupID string, userIDs []string) (map[string]bool, error)

	// CreateExpense persists an expense and all of its splits as one atomic
	// unit, populating ID and CreatedAt. Either every row is written or none
	// is.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListGroupExpenses returns a group's expenses, newest first, including
	// splits.
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
