package models

// GroupType categorizes what a group is for.
type GroupType string

const (
	GroupTypeTrip   GroupType = "trip"
	GroupTypeHome   GroupType = "home"
	GroupTypeCouple GroupType = "couple"
	GroupTypeOther  GroupType = "other"
)

// GroupRole is a member's role within a group.
type GroupRole string

const (
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

// Group represents a circle of users that can own expenses, enabling group
// expense history and membership-scoped splits.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// Type categorizes the group: trip, home, couple, or other.
	Type GroupType

	// CreatedBy is the user ID of the creator, who becomes the first admin.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is one user's membership in a group.
type GroupMember struct {
	// GroupID is the group this membership belongs to.
	GroupID string

	// UserID is the member.
	UserID string

	// Role is admin or member. Only admins may add members.
	Role GroupRole

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64
}
