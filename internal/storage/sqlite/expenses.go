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

// CreateExpense persists an expense and all of its splits in one
// transaction, generating ID and CreatedAt. This is the atomicity boundary
// the allocation core relies on: either the expense and every split row are
// written, or nothing is.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	groupID := sql.NullString{String: expense.GroupID, Valid: expense.GroupID != ""}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, amount, description, split_type, paid_by, group_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Amount.String(), expense.Description, expense.SplitType,
		expense.PaidBy, groupID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, user_id, amount) VALUES (?, ?, ?)",
			split.ExpenseID, split.UserID, split.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var rawAmount string
	var groupID sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, amount, description, split_type, paid_by, group_id, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &rawAmount, &expense.Description, &expense.SplitType,
		&expense.PaidBy, &groupID, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Amount, err = scanAmount(rawAmount); err != nil {
		return nil, err
	}
	expense.GroupID = groupID.String

	if expense.Splits, err = s.expenseSplits(ctx, expense.ID); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListGroupExpenses returns a group's expenses, newest first, with splits.
func (s *Store) ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, description, split_type, paid_by, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		var rawAmount string
		if err := rows.Scan(&expense.ID, &rawAmount, &expense.Description,
			&expense.SplitType, &expense.PaidBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if expense.Amount, err = scanAmount(rawAmount); err != nil {
			return nil, err
		}
		expense.GroupID = groupID
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if expenses[i].Splits, err = s.expenseSplits(ctx, expenses[i].ID); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *Store) expenseSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		var rawAmount string
		if err := rows.Scan(&split.ExpenseID, &split.UserID, &rawAmount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if split.Amount, err = scanAmount(rawAmount); err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}
