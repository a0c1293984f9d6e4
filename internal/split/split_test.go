package split

import (
	"testing"

	"github.com/shopspring/decimal"

	"splitpal/internal/money"
)

func amt(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	if err != nil {
		t.Fatalf("bad test amount %q: %v", s, err)
	}
	return a
}

func amtPtr(t *testing.T, s string) *money.Amount {
	t.Helper()
	a := amt(t, s)
	return &a
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func shr(n int64) *int64 { return &n }

func TestParseType(t *testing.T) {
	for _, valid := range []string{"equal", "exact", "percent", "share"} {
		if _, err := ParseType(valid); err != nil {
			t.Errorf("ParseType(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseType("evenly"); CodeOf(err) != CodeInvalidSplitType {
		t.Errorf("ParseType(evenly) code = %v, want %v", CodeOf(err), CodeInvalidSplitType)
	}
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		typ          Type
		participants []string
		inputs       []Input
		wantCode     ErrorCode
		want         map[string]string
	}{
		{
			name:         "equal split divides evenly",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob"},
			inputs:       []Input{{Participant: "alice"}, {Participant: "bob"}},
			want:         map[string]string{"alice": "5.00", "bob": "5.00"},
		},
		{
			name:         "equal split with remainder favors lowest id",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob", "carol"},
			inputs:       []Input{{Participant: "alice"}, {Participant: "bob"}, {Participant: "carol"}},
			want:         map[string]string{"alice": "3.34", "bob": "3.33", "carol": "3.33"},
		},
		{
			name:         "equal split single participant",
			total:        "7.77",
			typ:          TypeEqual,
			participants: []string{"alice"},
			inputs:       []Input{{Participant: "alice"}},
			want:         map[string]string{"alice": "7.77"},
		},
		{
			name:         "exact split taken verbatim",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "7.25")},
				{Participant: "bob", Amount: amtPtr(t, "2.75")},
			},
			want: map[string]string{"alice": "7.25", "bob": "2.75"},
		},
		{
			name:         "exact split allows a zero share",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "10.00")},
				{Participant: "bob", Amount: amtPtr(t, "0.00")},
			},
			want: map[string]string{"alice": "10.00", "bob": "0.00"},
		},
		{
			name:         "exact split sum mismatch",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "7.00")},
				{Participant: "bob", Amount: amtPtr(t, "2.00")},
			},
			wantCode: CodeExactTotalMismatch,
		},
		{
			name:         "exact split rejects negative amount",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "11.00")},
				{Participant: "bob", Amount: amtPtr(t, "-1.00")},
			},
			wantCode: CodeInvalidAmount,
		},
		{
			name:         "exact split requires an amount",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "10.00")},
				{Participant: "bob"},
			},
			wantCode: CodeInvalidAmount,
		},
		{
			name:         "percent fifty fifty",
			total:        "100.00",
			typ:          TypePercent,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("50")},
				{Participant: "bob", Percent: pct("50")},
			},
			want: map[string]string{"alice": "50.00", "bob": "50.00"},
		},
		{
			name:         "percent with rounding reconciles",
			total:        "100.00",
			typ:          TypePercent,
			participants: []string{"alice", "bob", "carol"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("33.33")},
				{Participant: "bob", Percent: pct("33.33")},
				{Participant: "carol", Percent: pct("33.34")},
			},
			want: map[string]string{"alice": "33.33", "bob": "33.33", "carol": "33.34"},
		},
		{
			name:         "percent sum mismatch",
			total:        "100.00",
			typ:          TypePercent,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("50")},
				{Participant: "bob", Percent: pct("49")},
			},
			wantCode: CodePercentSumMismatch,
		},
		{
			name:         "percent out of range",
			total:        "100.00",
			typ:          TypePercent,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("150")},
				{Participant: "bob", Percent: pct("-50")},
			},
			wantCode: CodeInvalidPercent,
		},
		{
			name:         "percent requires a percent",
			total:        "100.00",
			typ:          TypePercent,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("100")},
				{Participant: "bob"},
			},
			wantCode: CodeInvalidPercent,
		},
		{
			name:         "share weights one and two",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(1)},
				{Participant: "bob", Shares: shr(2)},
			},
			want: map[string]string{"alice": "3.33", "bob": "6.67"},
		},
		{
			name:         "equal share weights match equal split",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob", "carol"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(1)},
				{Participant: "bob", Shares: shr(1)},
				{Participant: "carol", Shares: shr(1)},
			},
			want: map[string]string{"alice": "3.34", "bob": "3.33", "carol": "3.33"},
		},
		{
			name:         "share weight below one",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(0)},
				{Participant: "bob", Shares: shr(2)},
			},
			wantCode: CodeInvalidShareWeight,
		},
		{
			name:         "share requires a weight",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(1)},
				{Participant: "bob"},
			},
			wantCode: CodeInvalidShareWeight,
		},
		{
			name:         "large weights within range allocate normally",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(4000000000000000000)},
				{Participant: "bob", Shares: shr(5000000000000000000)},
			},
			want: map[string]string{"alice": "4.44", "bob": "5.56"},
		},
		{
			name:         "share weight sum overflow rejected",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob", "carol"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(9000000000000000000)},
				{Participant: "bob", Shares: shr(9000000000000000000)},
				{Participant: "carol", Shares: shr(1)},
			},
			wantCode: CodeInvalidShareWeight,
		},
		{
			name:         "percent field on an equal split rejected",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Percent: pct("50")},
				{Participant: "bob"},
			},
			wantCode: CodeInvalidPercent,
		},
		{
			name:         "amount field on a share split rejected",
			total:        "10.00",
			typ:          TypeShare,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Shares: shr(1), Amount: amtPtr(t, "5.00")},
				{Participant: "bob", Shares: shr(1)},
			},
			wantCode: CodeInvalidAmount,
		},
		{
			name:         "shares field on an exact split rejected",
			total:        "10.00",
			typ:          TypeExact,
			participants: []string{"alice", "bob"},
			inputs: []Input{
				{Participant: "alice", Amount: amtPtr(t, "5.00"), Shares: shr(1)},
				{Participant: "bob", Amount: amtPtr(t, "5.00")},
			},
			wantCode: CodeInvalidShareWeight,
		},
		{
			name:         "zero total rejected",
			total:        "0.00",
			typ:          TypeEqual,
			participants: []string{"alice"},
			inputs:       []Input{{Participant: "alice"}},
			wantCode:     CodeInvalidAmount,
		},
		{
			name:         "negative total rejected",
			total:        "-5.00",
			typ:          TypeEqual,
			participants: []string{"alice"},
			inputs:       []Input{{Participant: "alice"}},
			wantCode:     CodeInvalidAmount,
		},
		{
			name:         "empty participant set rejected",
			total:        "10.00",
			typ:          TypeEqual,
			participants: nil,
			inputs:       nil,
			wantCode:     CodeParticipantMismatch,
		},
		{
			name:         "duplicate input participant rejected",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob"},
			inputs:       []Input{{Participant: "alice"}, {Participant: "alice"}},
			wantCode:     CodeParticipantMismatch,
		},
		{
			name:         "input outside resolved set rejected",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob"},
			inputs:       []Input{{Participant: "alice"}, {Participant: "mallory"}},
			wantCode:     CodeParticipantMismatch,
		},
		{
			name:         "missing input for resolved participant rejected",
			total:        "10.00",
			typ:          TypeEqual,
			participants: []string{"alice", "bob"},
			inputs:       []Input{{Participant: "alice"}},
			wantCode:     CodeParticipantMismatch,
		},
		{
			name:         "unknown strategy rejected",
			total:        "10.00",
			typ:          Type("evenly"),
			participants: []string{"alice"},
			inputs:       []Input{{Participant: "alice"}},
			wantCode:     CodeInvalidSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := amt(t, tt.total)
			got, err := Allocate(total, tt.typ, tt.participants, tt.inputs)
			if tt.wantCode != "" {
				if code := CodeOf(err); code != tt.wantCode {
					t.Fatalf("Allocate() code = %v (err %v), want %v", code, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() failed: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Allocate() returned %d shares, want %d", len(got), len(tt.want))
			}
			sum := money.Zero
			for p, want := range tt.want {
				share, ok := got[p]
				if !ok {
					t.Fatalf("missing share for %s", p)
				}
				if share.String() != want {
					t.Errorf("shares[%s] = %s, want %s", p, share, want)
				}
				if share.IsNegative() {
					t.Errorf("shares[%s] = %s is negative", p, share)
				}
				sum = sum.Add(share)
			}
			if !sum.Equal(total) {
				t.Errorf("shares sum to %s, want %s", sum, total)
			}
		})
	}
}

func TestAllocateConservation(t *testing.T) {
	// Awkward totals across all rounding strategies still reconcile exactly.
	totals := []string{"0.01", "0.05", "1.00", "9.99", "33.33", "100.01", "999.97"}
	participants := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}

	for _, s := range totals {
		total := amt(t, s)

		inputs := make([]Input, len(participants))
		for i, p := range participants {
			inputs[i] = Input{Participant: p}
		}
		shares, err := Allocate(total, TypeEqual, participants, inputs)
		if err != nil {
			t.Fatalf("equal %s: %v", s, err)
		}
		assertConserved(t, total, shares)

		for i := range inputs {
			inputs[i].Shares = shr(int64(i + 1))
		}
		shares, err = Allocate(total, TypeShare, participants, inputs)
		if err != nil {
			t.Fatalf("share %s: %v", s, err)
		}
		assertConserved(t, total, shares)
	}
}

func assertConserved(t *testing.T, total money.Amount, shares map[string]money.Amount) {
	t.Helper()
	sum := money.Zero
	for _, share := range shares {
		sum = sum.Add(share)
	}
	if !sum.Equal(total) {
		t.Errorf("shares sum to %s, want %s", sum, total)
	}
}
