package split

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"splitpal/internal/money"
	"splitpal/internal/storage"
)

// GroupMembership answers membership queries for group-scoped expenses.
// Implementations return storage.ErrGroupNotFound when the group id is
// unknown.
type GroupMembership interface {
	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)
	GroupMembersOf(ctx context.Context, groupID string, userIDs []string) (map[string]bool, error)
}

// IdentityStore answers existence queries for ungrouped expenses.
type IdentityStore interface {
	UsersExist(ctx context.Context, userIDs []string) (map[string]bool, error)
}

// Draft is a requested expense before resolution and allocation.
type Draft struct {
	Amount      money.Amount
	Description string
	Type        Type
	PaidBy      string
	GroupID     string // empty for an ungrouped expense
}

// Resolver produces the validated, deduplicated set of identities eligible
// to receive a share of an expense. It is read-only: resolving twice with
// unchanged membership yields the same set.
type Resolver struct {
	groups     GroupMembership
	identities IdentityStore
}

// NewResolver creates a resolver over the given membership and identity
// collaborators.
func NewResolver(groups GroupMembership, identities IdentityStore) *Resolver {
	return &Resolver{groups: groups, identities: identities}
}

// Resolve validates the raw participant references against the draft and
// returns the participant set sorted by identifier, the order remainder
// distribution relies on.
//
// Duplicate references are rejected, not silently deduplicated: a duplicate
// makes the split inputs ambiguous and must not be guessed at.
func (r *Resolver) Resolve(ctx context.Context, draft Draft, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, NewError(CodeParticipantMismatch, "participants", "at least one participant is required")
	}

	seen := make(map[string]bool, len(refs))
	payerListed := false
	for _, ref := range refs {
		if seen[ref] {
			return nil, NewError(CodeDuplicateParticipant, ref, "participant referenced more than once")
		}
		seen[ref] = true
		if ref == draft.PaidBy {
			payerListed = true
		}
	}
	if !payerListed {
		return nil, NewError(CodePayerNotInSplits, draft.PaidBy, "payer must be among the participants")
	}

	if draft.GroupID != "" {
		if err := r.checkGroup(ctx, draft, refs); err != nil {
			return nil, err
		}
	} else {
		if err := r.checkIdentities(ctx, refs); err != nil {
			return nil, err
		}
	}

	resolved := make([]string, 0, len(refs))
	for ref := range seen {
		resolved = append(resolved, ref)
	}
	sort.Strings(resolved)
	return resolved, nil
}

// checkGroup verifies the payer's own membership before resolving the rest
// of the references against the group roster.
func (r *Resolver) checkGroup(ctx context.Context, draft Draft, refs []string) error {
	isMember, err := r.groups.IsGroupMember(ctx, draft.GroupID, draft.PaidBy)
	if err != nil {
		if errors.Is(err, storage.ErrGroupNotFound) {
			return NewError(CodeGroupNotFound, "group_id", fmt.Sprintf("group %s not found", draft.GroupID))
		}
		return fmt.Errorf("checking payer membership: %w", err)
	}
	if !isMember {
		return NewError(CodeNotAGroupMember, draft.PaidBy, "payer is not a member of this group")
	}

	members, err := r.groups.GroupMembersOf(ctx, draft.GroupID, refs)
	if err != nil {
		if errors.Is(err, storage.ErrGroupNotFound) {
			return NewError(CodeGroupNotFound, "group_id", fmt.Sprintf("group %s not found", draft.GroupID))
		}
		return fmt.Errorf("resolving group members: %w", err)
	}

	if outside := missingFrom(refs, members); len(outside) > 0 {
		return NewError(CodeParticipantNotGroupMember, strings.Join(outside, ","),
			"participants are not members of this group")
	}
	return nil
}

func (r *Resolver) checkIdentities(ctx context.Context, refs []string) error {
	existing, err := r.identities.UsersExist(ctx, refs)
	if err != nil {
		return fmt.Errorf("checking participant identities: %w", err)
	}
	if unknown := missingFrom(refs, existing); len(unknown) > 0 {
		return NewError(CodeUnknownParticipant, strings.Join(unknown, ","),
			"participants do not exist")
	}
	return nil
}

// missingFrom returns the refs absent from the lookup result, in input order.
func missingFrom(refs []string, present map[string]bool) []string {
	var missing []string
	for _, ref := range refs {
		if !present[ref] {
			missing = append(missing, ref)
		}
	}
	return missing
}
