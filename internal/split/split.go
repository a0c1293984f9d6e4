// Package split contains the expense allocation core: the calculation engine
// that divides a total among participants under one of four strategies, and
// the resolver that validates which identities are eligible to receive a
// share. Both are pure, synchronous computations; every result satisfies the
// conservation invariant that the shares sum exactly to the total.
package split

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"splitpal/internal/money"
)

// Type is the strategy used to divide an expense among its participants.
type Type string

const (
	// TypeEqual divides the total evenly across all participants.
	TypeEqual Type = "equal"
	// TypeExact takes each participant's amount verbatim.
	TypeExact Type = "exact"
	// TypePercent allocates by percentage of the total.
	TypePercent Type = "percent"
	// TypeShare allocates proportionally to integer share weights.
	TypeShare Type = "share"
)

// ParseType validates a strategy tag.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeEqual, TypeExact, TypePercent, TypeShare:
		return t, nil
	default:
		return "", NewError(CodeInvalidSplitType, "split_type", fmt.Sprintf("unknown split type %q", s))
	}
}

// Input is the per-participant payload for one allocation request. Exactly
// the field matching the strategy must be set; the engine rejects a missing
// required field and a stray field from another strategy alike. Inputs are
// consumed once and never persisted.
type Input struct {
	Participant string
	Amount      *money.Amount    // exact
	Percent     *decimal.Decimal // percent, 0-100
	Shares      *int64           // share, >= 1
}

var oneHundred = decimal.NewFromInt(100)

// Allocate divides total among the resolved participant set according to the
// strategy, returning one owed amount per participant. The returned shares
// always sum exactly to total: strategies that round intermediate values run
// the result through remainder distribution, which nudges shares by one cent
// in ascending participant order until the sum reconciles.
//
// The participants named in inputs must match the resolved set exactly; the
// engine never invents or drops a participant.
func Allocate(total money.Amount, typ Type, participants []string, inputs []Input) (map[string]money.Amount, error) {
	if !total.IsPositive() {
		return nil, NewError(CodeInvalidAmount, "amount", "amount must be greater than zero")
	}
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}
	if err := checkParticipants(participants, inputs); err != nil {
		return nil, err
	}
	if err := checkInputFields(typ, inputs); err != nil {
		return nil, err
	}

	switch typ {
	case TypeEqual:
		return allocateEqual(total, participants), nil
	case TypeExact:
		return allocateExact(total, inputs)
	case TypePercent:
		return allocatePercent(total, inputs)
	case TypeShare:
		return allocateShare(total, inputs)
	default:
		return nil, NewError(CodeInvalidSplitType, "split_type", fmt.Sprintf("unknown split type %q", typ))
	}
}

// checkInputFields rejects inputs carrying a field that belongs to a
// different strategy than the one dispatched. A stray field means the caller
// built the request for another split type; guessing at the intent would
// silently discard data.
func checkInputFields(typ Type, inputs []Input) error {
	for _, in := range inputs {
		if in.Amount != nil && typ != TypeExact {
			return NewError(CodeInvalidAmount, in.Participant,
				fmt.Sprintf("amount is not allowed for a %s split", typ))
		}
		if in.Percent != nil && typ != TypePercent {
			return NewError(CodeInvalidPercent, in.Participant,
				fmt.Sprintf("percent is not allowed for a %s split", typ))
		}
		if in.Shares != nil && typ != TypeShare {
			return NewError(CodeInvalidShareWeight, in.Participant,
				fmt.Sprintf("shares is not allowed for a %s split", typ))
		}
	}
	return nil
}

// checkParticipants enforces the 1:1 correspondence between the resolved set
// and the split inputs: same cardinality, no duplicates, no extras, no
// omissions.
func checkParticipants(participants []string, inputs []Input) error {
	if len(participants) == 0 {
		return NewError(CodeParticipantMismatch, "participants", "participant set is empty")
	}

	resolved := make(map[string]bool, len(participants))
	for _, p := range participants {
		resolved[p] = true
	}

	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.Participant] {
			return NewError(CodeParticipantMismatch, in.Participant, "participant listed more than once in split inputs")
		}
		seen[in.Participant] = true
		if !resolved[in.Participant] {
			return NewError(CodeParticipantMismatch, in.Participant, "participant is not in the resolved set")
		}
	}
	if len(seen) != len(resolved) {
		return NewError(CodeParticipantMismatch, "splits", "split inputs do not cover every resolved participant")
	}
	return nil
}

func allocateEqual(total money.Amount, participants []string) map[string]money.Amount {
	base := money.Truncate(total.Decimal().Div(decimal.NewFromInt(int64(len(participants)))))
	shares := make(map[string]money.Amount, len(participants))
	for _, p := range participants {
		shares[p] = base
	}
	money.DistributeRemainder(total, shares)
	return shares
}

func allocateExact(total money.Amount, inputs []Input) (map[string]money.Amount, error) {
	shares := make(map[string]money.Amount, len(inputs))
	sum := money.Zero
	for _, in := range inputs {
		if in.Amount == nil {
			return nil, NewError(CodeInvalidAmount, in.Participant, "amount is required for an exact split")
		}
		if in.Amount.IsNegative() {
			return nil, NewError(CodeInvalidAmount, in.Participant, "amount must not be negative")
		}
		shares[in.Participant] = *in.Amount
		sum = sum.Add(*in.Amount)
	}
	if !sum.Equal(total) {
		return nil, NewError(CodeExactTotalMismatch, "splits",
			fmt.Sprintf("exact amounts sum to %s, expected %s", sum, total))
	}
	return shares, nil
}

func allocatePercent(total money.Amount, inputs []Input) (map[string]money.Amount, error) {
	sum := decimal.Zero
	for _, in := range inputs {
		if in.Percent == nil {
			return nil, NewError(CodeInvalidPercent, in.Participant, "percent is required for a percent split")
		}
		if in.Percent.IsNegative() || in.Percent.GreaterThan(oneHundred) {
			return nil, NewError(CodeInvalidPercent, in.Participant, "percent must be between 0 and 100")
		}
		sum = sum.Add(*in.Percent)
	}
	if !sum.Equal(oneHundred) {
		return nil, NewError(CodePercentSumMismatch, "splits",
			fmt.Sprintf("percentages sum to %s, expected 100", sum))
	}

	shares := make(map[string]money.Amount, len(inputs))
	for _, in := range inputs {
		shares[in.Participant] = money.Quantize(total.Decimal().Mul(in.Percent.Div(oneHundred)))
	}
	money.DistributeRemainder(total, shares)
	return shares, nil
}

func allocateShare(total money.Amount, inputs []Input) (map[string]money.Amount, error) {
	var sumShares int64
	for _, in := range inputs {
		if in.Shares == nil || *in.Shares < 1 {
			return nil, NewError(CodeInvalidShareWeight, in.Participant, "shares must be a positive integer")
		}
		if *in.Shares > math.MaxInt64-sumShares {
			return nil, NewError(CodeInvalidShareWeight, in.Participant, "share weights are too large")
		}
		sumShares += *in.Shares
	}

	weightTotal := decimal.NewFromInt(sumShares)
	shares := make(map[string]money.Amount, len(inputs))
	for _, in := range inputs {
		weight := decimal.NewFromInt(*in.Shares)
		shares[in.Participant] = money.Quantize(total.Decimal().Mul(weight).Div(weightTotal))
	}
	money.DistributeRemainder(total, shares)
	return shares, nil
}
