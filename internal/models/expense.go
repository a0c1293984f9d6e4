package models

import "splitpal/internal/money"

// Expense represents a shared cost paid by one user and divided among a set
// of participants. An expense is immutable once created: it and its splits
// are written together in a single transaction and never updated.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Amount is the total cost. Always greater than zero.
	Amount money.Amount

	// Description is free text describing the expense.
	Description string

	// SplitType is the strategy tag used to divide the amount
	// (equal, exact, percent, or share).
	SplitType string

	// PaidBy is the user ID of the payer. The payer always appears among
	// the expense's splits.
	PaidBy string

	// GroupID is the owning group, or empty for an ungrouped expense.
	GroupID string

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// Splits are the per-participant owed amounts. Their sum equals Amount
	// exactly.
	Splits []ExpenseSplit
}

// ExpenseSplit is one participant's owed portion of an expense.
type ExpenseSplit struct {
	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the participant who owes this portion.
	UserID string

	// Amount is the owed portion. Never negative.
	Amount money.Amount
}

// Balance is the net amount one user owes another, aggregated across
// expenses. Nothing computes or persists balances yet; the model exists so a
// future aggregation service has a shape to fill.
type Balance struct {
	// FromUserID is the user who owes.
	FromUserID string

	// ToUserID is the user who is owed.
	ToUserID string

	// Amount is the net debt.
	Amount money.Amount
}
