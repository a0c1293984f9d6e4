package models

// User represents a registered account. Participants in expenses and groups
// are always referenced by User.ID.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// FirstName and LastName are the user's display names.
	FirstName string
	LastName  string

	// Email is the user's unique email address, used for login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// MobileNo is an optional phone number.
	MobileNo string

	// DefaultCurrency is an optional ISO 4217 code used for display only;
	// no currency conversion happens anywhere in the system.
	DefaultCurrency string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// FriendshipStatus is the lifecycle state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship links two users. A friendship is directional while pending
// (FromUserID sent the request) and symmetric once accepted.
type Friendship struct {
	// ID is the unique identifier for the friendship (UUID format).
	ID string

	// FromUserID is the user who initiated the request.
	FromUserID string

	// ToUserID is the user who received the request.
	ToUserID string

	// Status is pending, accepted, or rejected.
	Status FriendshipStatus

	// CreatedAt is the Unix timestamp when the request was sent.
	CreatedAt int64
}
