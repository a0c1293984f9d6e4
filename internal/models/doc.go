// Package models defines the core domain models for splitpal.
//
// # Models
//
//   - User: registered account, identified by email
//   - Friendship: pending/accepted/rejected link between two users
//   - Group: named circle of users that can own expenses
//   - GroupMember: membership row with an admin or member role
//   - Expense: a shared cost paid by one user and divided among participants
//   - ExpenseSplit: one participant's owed portion of an expense
//   - Balance: pairwise net debt between two users
//
// # Design Principles
//
// 1. **Exact money**: every monetary field is a money.Amount, never a float
// 2. **Immutable expenses**: an expense and its splits are created together
//    and never mutated afterward
// 3. **Avoid circular references**: relationships use ID strings, not pointers
//
// Balance is modeled but has no computation path wired to expense creation;
// aggregating balances from the expense stream belongs to a separate service
// consuming the expense/split records.
package models
