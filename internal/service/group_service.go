package service

import (
	"context"
	"errors"
	"log/slog"

	"splitpal/internal/models"
	"splitpal/internal/storage"
)

// ErrNotGroupAdmin is returned when a non-admin tries to manage membership.
var ErrNotGroupAdmin = errors.New("only group admins can add members")

// GroupService handles group creation and membership management.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group; the creator becomes its first admin member in
// the same write.
func (s *GroupService) CreateGroup(ctx context.Context, name string, groupType models.GroupType, creatorID string) (*models.Group, error) {
	group := &models.Group{
		Name:      name,
		Type:      groupType,
		CreatedBy: creatorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "created_by", creatorID)
	return group, nil
}

// AddMembersResult categorizes each requested member id by outcome.
type AddMembersResult struct {
	Added          []string `json:"added"`
	AlreadyMembers []string `json:"already_members"`
	NotFriends     []string `json:"not_friends"`
	NotFound       []string `json:"not_found"`
}

// AddMembers adds users to a group. Only admins may add, and only their
// accepted friends may be added. Each id is reported under exactly one
// outcome; the actor's own id is ignored.
func (s *GroupService) AddMembers(ctx context.Context, groupID, actorID string, memberIDs []string) (*AddMembersResult, error) {
	isAdmin, err := s.store.IsGroupAdmin(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotGroupAdmin
	}

	existing, err := s.store.UsersExist(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GroupMembersOf(ctx, groupID, memberIDs)
	if err != nil {
		return nil, err
	}

	result := &AddMembersResult{
		Added:          []string{},
		AlreadyMembers: []string{},
		NotFriends:     []string{},
		NotFound:       []string{},
	}
	seen := make(map[string]bool, len(memberIDs))
	for _, memberID := range memberIDs {
		if memberID == actorID || seen[memberID] {
			continue
		}
		seen[memberID] = true

		if !existing[memberID] {
			result.NotFound = append(result.NotFound, memberID)
			continue
		}
		if members[memberID] {
			result.AlreadyMembers = append(result.AlreadyMembers, memberID)
			continue
		}

		friends, err := s.store.AreFriends(ctx, actorID, memberID)
		if err != nil {
			return nil, err
		}
		if !friends {
			result.NotFriends = append(result.NotFriends, memberID)
			continue
		}

		member := &models.GroupMember{
			GroupID: groupID,
			UserID:  memberID,
			Role:    models.RoleMember,
		}
		if err := s.store.AddGroupMember(ctx, member); err != nil {
			return nil, err
		}
		result.Added = append(result.Added, memberID)
	}

	slog.Info("Group members added",
		"group_id", groupID,
		"added", len(result.Added),
		"skipped", len(result.AlreadyMembers)+len(result.NotFriends)+len(result.NotFound),
	)
	return result, nil
}

// GetGroup retrieves a group; only members may view it.
func (s *GroupService) GetGroup(ctx context.Context, groupID, viewerID string) (*models.Group, error) {
	isMember, err := s.store.IsGroupMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotGroupMember
	}
	return s.store.GetGroup(ctx, groupID)
}
