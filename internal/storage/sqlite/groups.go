package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitpal/internal/models"
	"splitpal/internal/storage"
)

// CreateGroup persists a group and its creator's admin membership in one
// transaction, generating ID and CreatedAt.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, group_type, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Type, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		group.ID, group.CreatedBy, models.RoleAdmin, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, group_type, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.Type, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddGroupMember persists a membership row, generating JoinedAt.
func (s *Store) AddGroupMember(ctx context.Context, member *models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
		member.GroupID, member.UserID, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// IsGroupMember reports whether the user belongs to the group.
func (s *Store) IsGroupMember(ctx context.Context, groupID, userID string) (bool, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// IsGroupAdmin reports whether the user is an admin of the group.
func (s *Store) IsGroupAdmin(ctx context.Context, groupID, userID string) (bool, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM group_members WHERE group_id = ? AND user_id = ? AND role = ?",
		groupID, userID, models.RoleAdmin,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return count > 0, nil
}

// GroupMembersOf reports which of the given user IDs are members of the group.
func (s *Store) GroupMembersOf(ctx context.Context, groupID string, userIDs []string) (map[string]bool, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return nil, err
	}

	members := make(map[string]bool, len(userIDs))
	if len(userIDs) == 0 {
		return members, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? AND user_id IN ("+placeholders(len(userIDs))+")",
		append([]any{groupID}, stringArgs(userIDs)...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		members[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

func (s *Store) groupExists(ctx context.Context, groupID string) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM groups WHERE id = ?", groupID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}
	if count == 0 {
		return storage.ErrGroupNotFound
	}
	return nil
}
