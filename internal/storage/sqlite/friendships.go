package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"splitpal/internal/models"
	"splitpal/internal/storage"
)

// CreateFriendship persists a new friend request, generating ID and CreatedAt.
// A pair can only be linked once regardless of direction.
func (s *Store) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	if friendship.ID == "" {
		friendship.ID = uuid.New().String()
	}
	if friendship.CreatedAt == 0 {
		friendship.CreatedAt = time.Now().Unix()
	}
	if friendship.Status == "" {
		friendship.Status = models.FriendshipPending
	}

	// Reject the reverse direction too.
	var existing int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM friendships
		 WHERE (from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)`,
		friendship.FromUserID, friendship.ToUserID, friendship.ToUserID, friendship.FromUserID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if existing > 0 {
		return storage.ErrFriendshipExists
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO friendships (id, from_user_id, to_user_id, status, created_at) VALUES (?, ?, ?, ?, ?)",
		friendship.ID, friendship.FromUserID, friendship.ToUserID, friendship.Status, friendship.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrFriendshipExists
		}
		return fmt.Errorf("failed to insert friendship: %w", err)
	}
	return nil
}

// GetFriendship retrieves a friendship by ID.
func (s *Store) GetFriendship(ctx context.Context, id string) (*models.Friendship, error) {
	friendship := &models.Friendship{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, from_user_id, to_user_id, status, created_at FROM friendships WHERE id = ?",
		id,
	).Scan(&friendship.ID, &friendship.FromUserID, &friendship.ToUserID,
		&friendship.Status, &friendship.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrFriendshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return friendship, nil
}

// UpdateFriendshipStatus transitions a friendship to the given status.
func (s *Store) UpdateFriendshipStatus(ctx context.Context, id string, status models.FriendshipStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE friendships SET status = ? WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrFriendshipNotFound
	}
	return nil
}

// AreFriends reports whether an accepted friendship links the two users.
func (s *Store) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM friendships
		 WHERE status = ?
		   AND ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))`,
		models.FriendshipAccepted, userID, otherID, otherID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return count > 0, nil
}

// ListFriends returns the users linked to userID by accepted friendships.
func (s *Store) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.password_hash, u.mobile_no, u.default_currency, u.created_at
		 FROM users u
		 JOIN friendships f
		   ON (f.from_user_id = ? AND f.to_user_id = u.id)
		   OR (f.to_user_id = ? AND f.from_user_id = u.id)
		 WHERE f.status = ?
		 ORDER BY u.first_name, u.last_name`,
		userID, userID, models.FriendshipAccepted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.PasswordHash, &user.MobileNo, &user.DefaultCurrency, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}
