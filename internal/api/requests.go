package api

import (
	"github.com/shopspring/decimal"

	"splitpal/internal/models"
	"splitpal/internal/money"
)

// RegisterRequest is the payload for POST /api/users/register.
type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	MobileNo        string `json:"mobile_no" validate:"omitempty,e164"`
	DefaultCurrency string `json:"default_currency" validate:"omitempty,iso4217"`
}

// LoginRequest is the payload for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FriendRequestRequest is the payload for POST /api/friends/request.
type FriendRequestRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
}

// FriendRespondRequest is the payload for POST /api/friends/{id}/respond.
type FriendRespondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

// CreateGroupRequest is the payload for POST /api/groups.
type CreateGroupRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	GroupType string `json:"group_type" validate:"required,oneof=trip home couple other"`
}

// AddMembersRequest is the payload for POST /api/groups/{id}/members.
type AddMembersRequest struct {
	MemberIDs []string `json:"member_ids" validate:"required,min=1,dive,required"`
}

// SplitInputRequest is one participant entry in an expense creation request.
// Exactly the field matching split_type is expected; the split core rejects
// mismatched payloads.
type SplitInputRequest struct {
	UserID  string           `json:"user_id" validate:"required"`
	Amount  *money.Amount    `json:"amount,omitempty"`
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Shares  *int64           `json:"shares,omitempty"`
}

// CreateExpenseRequest is the payload for POST /api/expenses.
type CreateExpenseRequest struct {
	Amount      money.Amount        `json:"amount"`
	Description string              `json:"description"`
	SplitType   string              `json:"split_type" validate:"required"`
	GroupID     string              `json:"group_id,omitempty"`
	Splits      []SplitInputRequest `json:"splits" validate:"required,min=1,dive"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	MobileNo        string `json:"mobile_no,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		MobileNo:        user.MobileNo,
		DefaultCurrency: user.DefaultCurrency,
		CreatedAt:       user.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// FriendshipResponse is the public shape of a friendship.
type FriendshipResponse struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`
}

func newFriendshipResponse(f *models.Friendship) FriendshipResponse {
	return FriendshipResponse{
		ID:         f.ID,
		FromUserID: f.FromUserID,
		ToUserID:   f.ToUserID,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt,
	}
}

// GroupResponse is the public shape of a group.
type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GroupType string `json:"group_type"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

func newGroupResponse(group *models.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		GroupType: string(group.Type),
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}
}

// ExpenseSplitResponse is one participant's owed portion.
type ExpenseSplitResponse struct {
	UserID string       `json:"user_id"`
	Amount money.Amount `json:"amount"`
}

// ExpenseResponse is the public shape of an expense with its splits.
type ExpenseResponse struct {
	ID          string                 `json:"id"`
	Amount      money.Amount           `json:"amount"`
	Description string                 `json:"description"`
	SplitType   string                 `json:"split_type"`
	PaidBy      string                 `json:"paid_by"`
	GroupID     string                 `json:"group_id,omitempty"`
	CreatedAt   int64                  `json:"created_at"`
	Splits      []ExpenseSplitResponse `json:"splits"`
}

func newExpenseResponse(expense *models.Expense) ExpenseResponse {
	splits := make([]ExpenseSplitResponse, len(expense.Splits))
	for i, sp := range expense.Splits {
		splits[i] = ExpenseSplitResponse{UserID: sp.UserID, Amount: sp.Amount}
	}
	return ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Description: expense.Description,
		SplitType:   expense.SplitType,
		PaidBy:      expense.PaidBy,
		GroupID:     expense.GroupID,
		CreatedAt:   expense.CreatedAt,
		Splits:      splits,
	}
}
