// Package money provides a fixed-point currency amount with exactly two
// fractional digits. All arithmetic goes through shopspring/decimal; no
// float64 ever touches an amount, so sums that must reconcile exactly
// (expense totals vs. their splits) always do.
package money

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// scale is the number of fractional digits every Amount carries.
const scale = 2

var (
	// ErrPrecision indicates a value with more than two fractional digits.
	ErrPrecision = errors.New("amount must have at most 2 decimal places")
	// ErrMalformed indicates a value that is not a decimal number.
	ErrMalformed = errors.New("malformed decimal amount")
)

// cent is the smallest representable step (0.01).
var cent = decimal.New(1, -scale)

// Amount is an immutable monetary value with two fractional digits.
// The zero value is 0.00.
type Amount struct {
	d decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Amount{}

// Parse converts a decimal string such as "12.50" into an Amount.
// Values with more than two fractional digits are rejected rather than
// rounded: a caller sending "10.005" is sending an invalid amount, not a
// rounding request.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts a decimal into an Amount, rejecting values that do
// not fit in two fractional digits.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.Exponent() < -scale && !d.Equal(d.Truncate(scale)) {
		return Amount{}, fmt.Errorf("%w: %s", ErrPrecision, d)
	}
	return Amount{d: d.Round(scale)}, nil
}

// FromCents builds an Amount from an integer count of cents.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -scale)}
}

// Quantize rounds an arbitrary-precision intermediate value to two
// fractional digits using round-half-to-even (banker's rounding).
func Quantize(d decimal.Decimal) Amount {
	return Amount{d: d.RoundBank(scale)}
}

// Truncate cuts an arbitrary-precision value down to two fractional digits,
// dropping anything beyond them. For equal splits this is the floor-to-cents
// base share before the remainder is handed out.
func Truncate(d decimal.Decimal) Amount {
	return Amount{d: d.Truncate(scale)}
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// Cmp compares two amounts: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

// Equal reports whether two amounts are exactly equal.
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool { return a.d.IsPositive() }

// IsNegative reports whether the amount is less than zero.
func (a Amount) IsNegative() bool { return a.d.IsNegative() }

// String renders the amount with exactly two fractional digits ("12.50").
func (a Amount) String() string { return a.d.StringFixed(scale) }

// MarshalJSON renders the amount as a quoted 2-decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted or bare decimal literal.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, data)
	}
	parsed, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sum adds up a list of amounts.
func Sum(amounts []Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// DistributeRemainder reconciles naively rounded per-participant shares with
// the exact target total. Quantizing each share independently can leave the
// sum off by a few cents; this nudges shares by one cent at a time, walking
// participants in ascending key order, until the sum matches the target
// exactly. The walk order makes the result reproducible for identical input.
//
// The shares map is adjusted in place. Shares are never pushed below zero:
// when the sum is too high, participants whose share is already 0.00 are
// skipped, and if no share can absorb the deficit the walk stops with the
// shares unchanged from that point.
func DistributeRemainder(target Amount, shares map[string]Amount) {
	if len(shares) == 0 {
		return
	}

	diff := target.Sub(Sum(values(shares)))
	if diff.d.IsZero() {
		return
	}

	keys := make([]string, 0, len(shares))
	for k := range shares {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	step := Amount{d: cent}
	for !diff.d.IsZero() {
		progressed := false
		for _, k := range keys {
			if diff.d.IsZero() {
				break
			}
			if diff.IsPositive() {
				shares[k] = shares[k].Add(step)
				diff = diff.Sub(step)
				progressed = true
			} else if shares[k].IsPositive() {
				shares[k] = shares[k].Sub(step)
				diff = diff.Add(step)
				progressed = true
			}
		}
		// A full pass without movement means every share is already at
		// zero and the deficit cannot be absorbed. Stop rather than spin.
		if !progressed {
			return
		}
	}
}

func values(m map[string]Amount) []Amount {
	out := make([]Amount, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
