// Package service implements splitpal's application services on top of the
// storage layer and the split core.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"splitpal/internal/models"
	"splitpal/internal/split"
	"splitpal/internal/storage"
)

// Permission errors surfaced by services. The HTTP layer maps them to 403.
var (
	ErrNotParticipant = errors.New("you must be a participant of this expense")
	ErrNotGroupMember = errors.New("you must be a member of this group")
)

// ExpenseService coordinates expense creation: it validates the draft,
// resolves the participant set, computes the allocation, and persists the
// expense with its splits as a single atomic write. If any step before the
// write fails, nothing is persisted.
type ExpenseService struct {
	store    storage.Store
	resolver *split.Resolver
}

// NewExpenseService creates an ExpenseService with the given storage backend.
// The store doubles as the resolver's membership and identity collaborator.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{
		store:    store,
		resolver: split.NewResolver(store, store),
	}
}

// CreateExpense runs the resolve → allocate → persist pipeline. The raw
// participant references are the participants named in inputs; the engine
// re-checks that correspondence after resolution.
func (s *ExpenseService) CreateExpense(ctx context.Context, draft split.Draft, inputs []split.Input) (*models.Expense, error) {
	if !draft.Amount.IsPositive() {
		return nil, split.NewError(split.CodeInvalidAmount, "amount", "amount must be greater than zero")
	}
	if _, err := split.ParseType(string(draft.Type)); err != nil {
		return nil, err
	}

	refs := make([]string, len(inputs))
	for i, in := range inputs {
		refs[i] = in.Participant
	}

	participants, err := s.resolver.Resolve(ctx, draft, refs)
	if err != nil {
		return nil, err
	}

	shares, err := split.Allocate(draft.Amount, draft.Type, participants, inputs)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Amount:      draft.Amount,
		Description: draft.Description,
		SplitType:   string(draft.Type),
		PaidBy:      draft.PaidBy,
		GroupID:     draft.GroupID,
		Splits:      make([]models.ExpenseSplit, 0, len(participants)),
	}
	for _, p := range participants {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{
			UserID: p,
			Amount: shares[p],
		})
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense persistence failed", "paid_by", draft.PaidBy, "error", err)
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
		"participants", len(expense.Splits),
	)
	return expense, nil
}

// GetExpense retrieves an expense; only its participants may view it.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID, viewerID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	for _, sp := range expense.Splits {
		if sp.UserID == viewerID {
			return expense, nil
		}
	}
	return nil, ErrNotParticipant
}

// ListGroupExpenses returns a group's expenses; only members may list them.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, groupID, viewerID string) ([]models.Expense, error) {
	isMember, err := s.store.IsGroupMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotGroupMember
	}
	return s.store.ListGroupExpenses(ctx, groupID)
}
